package logging

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"tubetag/internal/domain/consts"

	"github.com/rs/zerolog"
)

const (
	tagBaseLen = 1 + // "["
		len(consts.ColorBlue) +
		10 + // "Function: "
		len(consts.ColorReset) +
		3 + // " - "
		len(consts.ColorBlue) +
		6 + // "File: "
		len(consts.ColorReset) +
		3 + // " : "
		len(consts.ColorBlue) +
		6 + // "Line: "
		len(consts.ColorReset) +
		2 // "]\n"
)

// E prints and logs an error with caller information.
func E(format string, args ...any) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.RedError) + tagBaseLen + len(format) + (len(args) * 32))
	b.WriteString(consts.RedError)
	writeFormatted(&b, format, args...)
	writeCaller(&b)

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.ErrorLevel, 0)
	return msg
}

// W prints and logs a warning.
func W(format string, args ...any) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.PurpleWarning) + len(format) + 1 + (len(args) * 32))
	b.WriteString(consts.PurpleWarning)
	writeFormatted(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.WarnLevel, 0)
	return msg
}

// S prints and logs a success message.
func S(format string, args ...any) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.GreenSuccess) + len(format) + 1 + (len(args) * 32))
	b.WriteString(consts.GreenSuccess)
	writeFormatted(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.InfoLevel, 0)
	return msg
}

// D prints and logs a debug message when l is below the configured debug level.
func D(l int, format string, args ...any) string {
	if l >= Level {
		return ""
	}

	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.YellowDebug) + tagBaseLen + len(format) + (len(args) * 32))
	b.WriteString(consts.YellowDebug)
	writeFormatted(&b, format, args...)
	writeCaller(&b)

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.DebugLevel, l)
	return msg
}

// I prints and logs an info message.
func I(format string, args ...any) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(consts.BlueInfo) + len(format) + 1 + (len(args) * 32))
	b.WriteString(consts.BlueInfo)
	writeFormatted(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.InfoLevel, 0)
	return msg
}

// P prints and logs a plain message.
func P(format string, args ...any) string {
	mu.Lock()
	defer mu.Unlock()

	var b strings.Builder
	b.Grow(len(format) + 1 + (len(args) * 32))
	writeFormatted(&b, format, args...)
	b.WriteString("\n")

	msg := b.String()
	fmt.Fprint(Console, msg)
	writeLog(msg, zerolog.InfoLevel, 0)
	return msg
}

func writeFormatted(b *strings.Builder, format string, args ...any) {
	if len(args) != 0 {
		fmt.Fprintf(b, format, args...)
	} else {
		b.WriteString(format)
	}
}

// writeCaller appends the function, file and line two frames up.
func writeCaller(b *strings.Builder) {
	pc, file, line, _ := runtime.Caller(2)
	file = filepath.Base(file)
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = filepath.Base(fn.Name())
	}

	b.WriteString(" [")
	b.WriteString(consts.ColorBlue)
	b.WriteString("Function: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(funcName)
	b.WriteString(" - ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("File: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(file)
	b.WriteString(" : ")
	b.WriteString(consts.ColorBlue)
	b.WriteString("Line: ")
	b.WriteString(consts.ColorReset)
	b.WriteString(strconv.Itoa(line))
	b.WriteString("]\n")
}
