package logger

import (
	"time"

	"github.com/fatih/color"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/throttle"
)

// Message is a pending log line. It is created by the Logger's level
// methods, adjusted by chained modifiers and written by Emit:
//
//	log.Warn("disk at ", pct, "%").Category("storage").Every(time.Minute).Emit()
//
// A Message is emitted at most once. It is not safe for concurrent use;
// hand it to another goroutine with Move. A nil *Message is a valid,
// disarmed message: every method is a no-op on it.
type Message struct {
	l        *Logger
	level    core.Level
	text     string
	style    core.Style
	category string
	fields   []core.Field
	caller   core.CallerInfo
	at       time.Time
	inPlace  bool
	suppress bool
	done     bool
}

// Level returns the message level
func (m *Message) Level() core.Level {
	if m == nil {
		return core.OffLevel
	}
	return m.level
}

// Text returns the rendered message text
func (m *Message) Text() string {
	if m == nil {
		return ""
	}
	return m.text
}

// Suppressed reports whether Emit will skip the message because of When,
// Once or Every
func (m *Message) Suppressed() bool {
	return m == nil || m.suppress
}

// Color sets the foreground color
func (m *Message) Color(attr color.Attribute) *Message {
	if m != nil {
		m.style.Fg = attr
		m.style.FgRGB = nil
	}
	return m
}

// Bg sets the background color. Foreground attributes are converted to
// their background counterpart, so Bg(color.FgRed) and Bg(color.BgRed)
// are equivalent.
func (m *Message) Bg(attr color.Attribute) *Message {
	if m != nil {
		m.style.Bg = toBackground(attr)
		m.style.BgRGB = nil
	}
	return m
}

// RGB sets a 24-bit foreground color
func (m *Message) RGB(r, g, b int) *Message {
	if m != nil {
		m.style.FgRGB = &core.RGB{R: r, G: g, B: b}
	}
	return m
}

// BgRGB sets a 24-bit background color
func (m *Message) BgRGB(r, g, b int) *Message {
	if m != nil {
		m.style.BgRGB = &core.RGB{R: r, G: g, B: b}
	}
	return m
}

// Hex sets the foreground from "#rrggbb" or "#rgb". Malformed input is
// ignored.
func (m *Message) Hex(hex string) *Message {
	if m != nil {
		if rgb, ok := core.ParseHex(hex); ok {
			m.style.FgRGB = &rgb
		}
	}
	return m
}

// BgHex sets the background from "#rrggbb" or "#rgb". Malformed input is
// ignored.
func (m *Message) BgHex(hex string) *Message {
	if m != nil {
		if rgb, ok := core.ParseHex(hex); ok {
			m.style.BgRGB = &rgb
		}
	}
	return m
}

// ColorName sets the foreground by name ("red", "bright blue", "gray").
// Unknown names are ignored.
func (m *Message) ColorName(name string) *Message {
	if m != nil {
		if attr, ok := core.ColorByName(name); ok {
			m.Color(attr)
		}
	}
	return m
}

// Bold renders the message in bold
func (m *Message) Bold() *Message {
	if m != nil {
		m.style.Bold = true
	}
	return m
}

// Italic renders the message in italics
func (m *Message) Italic() *Message {
	if m != nil {
		m.style.Italic = true
	}
	return m
}

// Underline underlines the message
func (m *Message) Underline() *Message {
	if m != nil {
		m.style.Underline = true
	}
	return m
}

// Style replaces the whole style
func (m *Message) Style(s core.Style) *Message {
	if m != nil {
		m.style = s
	}
	return m
}

// When suppresses the message if cond is false. Once suppressed, a later
// When(true) does not re-arm it.
func (m *Message) When(cond bool) *Message {
	if m != nil && !cond {
		m.suppress = true
	}
	return m
}

// Once lets only the first message from this call site through for the
// lifetime of the logger's throttle. A message that is already suppressed
// does not use up the call site.
func (m *Message) Once() *Message {
	if m == nil || m.suppress {
		return m
	}
	return m.once(throttle.CallerKey(1))
}

// OnceKey is Once with an explicit key instead of the call site
func (m *Message) OnceKey(key string) *Message {
	if m == nil || m.suppress {
		return m
	}
	return m.once(throttle.KeyString(key))
}

func (m *Message) once(key throttle.Key) *Message {
	if !m.l.throttle.CheckAndMarkOnce(key) {
		m.suppress = true
	}
	return m
}

// Every lets a message from this call site through at most once per
// interval.
func (m *Message) Every(interval time.Duration) *Message {
	if m == nil || m.suppress {
		return m
	}
	return m.every(throttle.CallerKey(1), interval)
}

// EveryKey is Every with an explicit key instead of the call site
func (m *Message) EveryKey(key string, interval time.Duration) *Message {
	if m == nil || m.suppress {
		return m
	}
	return m.every(throttle.KeyString(key), interval)
}

func (m *Message) every(key throttle.Key, interval time.Duration) *Message {
	if !m.l.throttle.CheckEvery(key, interval) {
		m.suppress = true
	}
	return m
}

// Category tags the message. The category's level override is checked on
// Emit.
func (m *Message) Category(name string) *Message {
	if m != nil {
		m.category = name
	}
	return m
}

// InPlace makes the message overwrite the current terminal line instead of
// starting a new one, for progress output.
func (m *Message) InPlace() *Message {
	if m != nil {
		m.inPlace = true
	}
	return m
}

// Fields appends structured fields
func (m *Message) Fields(fields ...core.Field) *Message {
	if m != nil {
		m.fields = append(m.fields, fields...)
	}
	return m
}

// Str adds a string field
func (m *Message) Str(key, val string) *Message {
	if m != nil {
		m.fields = append(m.fields, String(key, val))
	}
	return m
}

// Int adds an int field
func (m *Message) Int(key string, val int) *Message {
	if m != nil {
		m.fields = append(m.fields, Int(key, val))
	}
	return m
}

// Int64 adds an int64 field
func (m *Message) Int64(key string, val int64) *Message {
	if m != nil {
		m.fields = append(m.fields, Int64(key, val))
	}
	return m
}

// Float64 adds a float64 field
func (m *Message) Float64(key string, val float64) *Message {
	if m != nil {
		m.fields = append(m.fields, Float64(key, val))
	}
	return m
}

// Bool adds a bool field
func (m *Message) Bool(key string, val bool) *Message {
	if m != nil {
		m.fields = append(m.fields, Bool(key, val))
	}
	return m
}

// Dur adds a duration field
func (m *Message) Dur(key string, val time.Duration) *Message {
	if m != nil {
		m.fields = append(m.fields, Duration(key, val))
	}
	return m
}

// Time adds a time field
func (m *Message) Time(key string, val time.Time) *Message {
	if m != nil {
		m.fields = append(m.fields, Time(key, val))
	}
	return m
}

// Err adds an ErrorKey field
func (m *Message) Err(err error) *Message {
	if m != nil {
		m.fields = append(m.fields, Err(err))
	}
	return m
}

// Any adds a field of any type
func (m *Message) Any(key string, val interface{}) *Message {
	if m != nil {
		m.fields = append(m.fields, Any(key, val))
	}
	return m
}

// Move transfers the message to a new handle and disarms m, so only the
// returned Message can emit. Moving an emitted or moved-from message
// returns nil.
func (m *Message) Move() *Message {
	if m == nil || m.done {
		return nil
	}
	moved := *m
	m.done = true
	m.fields = nil
	m.text = ""
	return &moved
}

// Emit writes the message to every sink that accepts its level. It does
// nothing when the message is nil, suppressed, moved-from or already
// emitted, or when the level no longer passes the category override or
// the gate.
func (m *Message) Emit() {
	if m == nil || m.done {
		return
	}
	m.done = true
	if m.suppress {
		return
	}

	l := m.l
	if m.category != "" {
		if !l.categories.ShouldLog(m.category, m.level) {
			return
		}
	} else if !l.gate.Enabled(m.level) {
		return
	}

	rec := core.GetRecord()
	if m.at.IsZero() {
		rec.Time = l.clock.Now()
	} else {
		rec.Time = m.at
	}
	rec.Level = m.level
	rec.Message = m.text
	rec.Category = m.category
	rec.Style = m.style
	rec.InPlace = m.inPlace
	rec.Caller = m.caller
	rec.Fields = append(rec.Fields, m.fields...)

	l.sinks.Dispatch(rec, l.formatter)
	core.PutRecord(rec)
}

func toBackground(attr color.Attribute) color.Attribute {
	switch {
	case attr >= color.FgBlack && attr <= color.FgWhite,
		attr >= color.FgHiBlack && attr <= color.FgHiWhite:
		return attr + 10
	}
	return attr
}
