package lumber

import (
	"bytes"
)

// Writer turns a byte stream, typically the stdout of a build command, into log lines.
// It must be closed when finished to flush buffered data to the logger.
type Writer struct {
	// Log specifies the logger to which the Writer will write messages.
	Log    Logger
	prefix string
	lines  int
	buff   bytes.Buffer
}

// NewWriter returns a new Writer that writes to the provided Logger.
// Every line is tagged with prefix, usually the service being built.
func NewWriter(log Logger, prefix string) *Writer {
	return &Writer{Log: log, prefix: prefix}
}

// Write splits the input on newlines and posts each line as a new log entry.
// Partial lines are buffered until the next newline or Close.
func (w *Writer) Write(bs []byte) (n int, err error) {
	n = len(bs)
	for len(bs) > 0 {
		bs = w.writeLine(bs)
	}
	return n, nil
}

// Lines returns the number of lines logged so far.
func (w *Writer) Lines() int {
	return w.lines
}

func (w *Writer) writeLine(line []byte) (remaining []byte) {
	idx := bytes.IndexByte(line, '\n')
	if idx < 0 {
		w.buff.Write(line)
		return nil
	}

	line, remaining = line[:idx], line[idx+1:]

	if w.buff.Len() == 0 {
		w.log(line)
		return remaining
	}

	w.buff.Write(line)
	w.flush(true)

	return remaining
}

// Close closes the writer, flushing any buffered data in the process.
func (w *Writer) Close() error {
	w.flush(false)
	return nil
}

func (w *Writer) flush(allowEmpty bool) {
	if allowEmpty || w.buff.Len() > 0 {
		w.log(w.buff.Bytes())
	}
	w.buff.Reset()
}

func (w *Writer) log(b []byte) {
	w.lines++
	if w.prefix == "" {
		w.Log.Debugf("%s", string(b))
		return
	}
	w.Log.Debugf("[%s] %s", w.prefix, string(b))
}
