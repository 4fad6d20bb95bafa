package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/sinklog/core"
)

// JSONFormatter formats records as one JSON object per line. Styles and
// the in-place flag are terminal concerns and are not encoded.
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats a record as JSON
func (f *JSONFormatter) Format(rec *core.Record) string {
	return render(f, rec)
}

// FormatRecord builds JSON manually into the buffer without allocations
func (f *JSONFormatter) FormatRecord(rec *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('{')

	sep := false
	if !f.DisableTimestamp {
		t := rec.Time
		if f.UTC {
			t = t.UTC()
		}
		buf.WriteString(`"time":"`)
		buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte('"')
		sep = true
	}

	if sep {
		buf.WriteByte(',')
	}
	buf.WriteString(`"level":"`)
	buf.WriteString(rec.Level.String())
	buf.WriteByte('"')

	if rec.Category != "" {
		buf.WriteString(`,"category":"`)
		appendJSONString(buf, rec.Category)
		buf.WriteByte('"')
	}

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, rec.Message)
	buf.WriteByte('"')

	if f.IncludeCaller && rec.Caller.Defined {
		buf.WriteString(`,"caller":{"file":"`)
		appendJSONString(buf, rec.Caller.ShortFile)
		buf.WriteString(`","line":`)
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Caller.Line), 10))
		if rec.Caller.Function != "" {
			buf.WriteString(`,"function":"`)
			appendJSONString(buf, rec.Caller.Function)
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	for _, field := range rec.Fields {
		buf.WriteString(`,"`)
		appendJSONString(buf, field.Key)
		buf.WriteString(`":`)
		appendJSONFieldValue(buf, field)
	}

	buf.WriteString("}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer
func appendJSONFieldValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.Int64Type, core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	default:
		buf.WriteByte('"')
		appendJSONString(buf, field.StringValue())
		buf.WriteByte('"')
	}
}
