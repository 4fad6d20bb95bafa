package logger

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strconv"
)

// Unprintable replaces an argument that has no usable text form.
const Unprintable = "[unprintable]"

// Prettier is implemented by values with a display form meant for logs.
// It takes precedence over every other representation.
type Prettier interface {
	Pretty() string
}

// Printer is implemented by values that write their own representation.
type Printer interface {
	Print(w io.Writer)
}

// Render concatenates the text form of args without separators. For each
// argument it uses, in order: Pretty, Print, String or Error, the native
// form of the value. Functions, channels, unsafe pointers and values whose
// methods panic render as Unprintable.
func Render(args ...interface{}) string {
	switch len(args) {
	case 0:
		return ""
	case 1:
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	buf := make([]byte, 0, 64)
	for _, arg := range args {
		buf = appendArg(buf, arg)
	}
	return string(buf)
}

func appendArg(dst []byte, arg interface{}) (out []byte) {
	mark := len(dst)
	defer func() {
		if recover() != nil {
			out = append(dst[:mark], Unprintable...)
		}
	}()

	switch v := arg.(type) {
	case nil:
		return append(dst, "<nil>"...)
	case string:
		return append(dst, v...)
	case Prettier:
		return append(dst, v.Pretty()...)
	case Printer:
		buf := bytes.NewBuffer(dst)
		v.Print(buf)
		return buf.Bytes()
	case fmt.Stringer:
		return append(dst, v.String()...)
	case error:
		return append(dst, v.Error()...)
	case []byte:
		return append(dst, v...)
	case bool:
		return strconv.AppendBool(dst, v)
	case int:
		return strconv.AppendInt(dst, int64(v), 10)
	case int8:
		return strconv.AppendInt(dst, int64(v), 10)
	case int16:
		return strconv.AppendInt(dst, int64(v), 10)
	case int32:
		return strconv.AppendInt(dst, int64(v), 10)
	case int64:
		return strconv.AppendInt(dst, v, 10)
	case uint:
		return strconv.AppendUint(dst, uint64(v), 10)
	case uint8:
		return strconv.AppendUint(dst, uint64(v), 10)
	case uint16:
		return strconv.AppendUint(dst, uint64(v), 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(dst, v, 10)
	case float32:
		return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(dst, v, 'g', -1, 64)
	}

	switch reflect.TypeOf(arg).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return append(dst, Unprintable...)
	}
	return fmt.Append(dst, arg)
}
