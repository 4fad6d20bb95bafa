package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/sinklog/core"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[2K"

// TextFormatter formats records as human-readable lines. In-place records
// start with a carriage return (plus an erase-line sequence when colored)
// and carry no trailing newline; consolesink keeps such output aligned.
type TextFormatter struct {
	Config
	levelTags [core.OffLevel + 1]string
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	f := &TextFormatter{Config: cfg}
	// pre-formatted level strings to avoid multiple WriteString calls
	for l := core.TraceLevel; l <= core.OffLevel; l++ {
		tag := "[" + l.String() + "]"
		if cfg.Color {
			tag = core.LevelStyle(l).Apply(tag)
		}
		f.levelTags[l] = tag + " "
	}
	return f
}

// Format formats a record as text
func (f *TextFormatter) Format(rec *core.Record) string {
	return render(f, rec)
}

// FormatRecord writes the formatted record into the given buffer
func (f *TextFormatter) FormatRecord(rec *core.Record, buf *bytes.Buffer) {
	if rec.InPlace {
		if f.Color {
			buf.WriteString(clearLine)
		} else {
			buf.WriteByte('\r')
		}
	}

	if !f.DisableTimestamp && !rec.Time.IsZero() {
		t := rec.Time
		if f.UTC {
			t = t.UTC()
		}
		buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	if rec.Level >= 0 && int(rec.Level) < len(f.levelTags) {
		buf.WriteString(f.levelTags[rec.Level])
	} else {
		buf.WriteString("[UNKNOWN] ")
	}

	if f.IncludeCategory && rec.Category != "" {
		buf.WriteByte('[')
		buf.WriteString(rec.Category)
		buf.WriteString("] ")
	}

	if f.IncludeCaller && rec.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(rec.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))
		buf.WriteString("] ")
	}

	if f.Color && !rec.Style.IsZero() {
		buf.WriteString(rec.Style.Apply(rec.Message))
	} else {
		buf.WriteString(rec.Message)
	}

	for _, field := range rec.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.Write(field.AppendValue(buf.AvailableBuffer()))
	}

	if !rec.InPlace {
		buf.WriteByte('\n')
	}
}
