package scramble

import "time"

// Grid limits and defaults, matching the ranges offered by the control panel.
const (
	MinBlocks = 1
	MaxBlocks = 20

	MaxShuffleInterval = 30 * time.Second
	MaxShiftRange      = 255

	DefaultRows            = 8
	DefaultColumns         = 8
	DefaultShuffleInterval = 5 * time.Second
	DefaultShiftRange      = 100
)

// GridConfig holds the runtime-adjustable scrambling parameters.
//
// Fields are only reachable through setters, which clamp values to their
// valid ranges. Changing rows or columns marks the config dirty; the flag is
// consumed once by the next [Scrambler.Process] call via [GridConfig.TakeDirty].
type GridConfig struct {
	rows            int
	columns         int
	shuffleInterval time.Duration
	colorShift      bool
	shiftRange      int
	dirty           bool
}

// NewGridConfig returns a config with the default 8×8 grid, a 5 second
// shuffle interval and color shift disabled.
func NewGridConfig() *GridConfig {
	return &GridConfig{
		rows:            DefaultRows,
		columns:         DefaultColumns,
		shuffleInterval: DefaultShuffleInterval,
		shiftRange:      DefaultShiftRange,
	}
}

func (c *GridConfig) Rows() int                      { return c.rows }
func (c *GridConfig) Columns() int                   { return c.columns }
func (c *GridConfig) Blocks() int                    { return c.rows * c.columns }
func (c *GridConfig) ShuffleInterval() time.Duration { return c.shuffleInterval }
func (c *GridConfig) ColorShift() bool               { return c.colorShift }
func (c *GridConfig) ShiftRange() int                { return c.shiftRange }

// SetRows sets the number of block rows, clamped to [MinBlocks, MaxBlocks].
// It reports whether the value changed.
func (c *GridConfig) SetRows(n int) bool {
	n = clamp(n, MinBlocks, MaxBlocks)
	if n == c.rows {
		return false
	}
	c.rows = n
	c.dirty = true
	return true
}

// SetColumns sets the number of block columns, clamped to [MinBlocks, MaxBlocks].
// It reports whether the value changed.
func (c *GridConfig) SetColumns(n int) bool {
	n = clamp(n, MinBlocks, MaxBlocks)
	if n == c.columns {
		return false
	}
	c.columns = n
	c.dirty = true
	return true
}

// SetShuffleInterval sets the minimum time between automatic reshuffles,
// clamped to [0, MaxShuffleInterval]. Zero reshuffles on every frame.
func (c *GridConfig) SetShuffleInterval(d time.Duration) {
	c.shuffleInterval = clamp(d, 0, MaxShuffleInterval)
}

// SetColorShift enables or disables per-block color jitter.
func (c *GridConfig) SetColorShift(on bool) {
	c.colorShift = on
}

// SetShiftRange sets the jitter amplitude, clamped to [0, MaxShiftRange].
func (c *GridConfig) SetShiftRange(n int) {
	c.shiftRange = clamp(n, 0, MaxShiftRange)
}

// TakeDirty reports whether rows or columns changed since the last call and
// clears the flag.
func (c *GridConfig) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

func clamp[T int | time.Duration](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
