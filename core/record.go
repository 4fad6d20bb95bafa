package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Record is one emitted message as seen by formatters and sinks.
type Record struct {
	Time     time.Time
	Level    Level
	Message  string
	Category string
	Style    Style
	InPlace  bool
	Fields   []Field
	Caller   CallerInfo
}

// CallerInfo contains information about the call site
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{
			Fields: make([]Field, 0, 8),
		}
	},
}

// GetRecord retrieves a cleared Record from the pool
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Fields = r.Fields[:0]
	return r
}

// PutRecord returns a Record to the pool. The caller must not touch r
// afterwards.
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	if cap(r.Fields) > 64 {
		r.Fields = nil
	}
	*r = Record{Fields: r.Fields[:0]}
	recordPool.Put(r)
}

// GetCaller retrieves caller information, skip frames above GetCaller itself.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
