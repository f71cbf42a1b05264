package ui

import (
	"image/color"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const DefaultCycleInterval = 2 * time.Second

var rainbow = []color.NRGBA{
	{R: 255, G: 0, B: 0, A: 255},   // red
	{R: 255, G: 127, B: 0, A: 255}, // orange
	{R: 255, G: 255, B: 0, A: 255}, // yellow
	{R: 0, G: 255, B: 0, A: 255},   // green
	{R: 0, G: 0, B: 255, A: 255},   // blue
	{R: 75, G: 0, B: 130, A: 255},  // indigo
	{R: 148, G: 0, B: 211, A: 255}, // violet
}

// TitleCycler recolours a text object with a random rainbow colour on a
// fixed interval.
type TitleCycler struct {
	text     *canvas.Text
	interval time.Duration
	pick     func(n int) int

	mu      sync.Mutex
	running bool
	stop    chan struct{}
}

func NewTitleCycler(text *canvas.Text, interval time.Duration) *TitleCycler {
	return &TitleCycler{
		text:     text,
		interval: interval,
		pick:     rand.Intn,
	}
}

// Start is idempotent.
func (c *TitleCycler) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stop = make(chan struct{})

	go c.run(c.stop)
}

func (c *TitleCycler) run(stop <-chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			col := c.next()
			fyne.Do(func() { c.apply(col) })
		}
	}
}

func (c *TitleCycler) next() color.NRGBA {
	return rainbow[c.pick(len(rainbow))]
}

func (c *TitleCycler) apply(col color.Color) {
	c.text.Color = col
	c.text.Refresh()
}

func (c *TitleCycler) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}
