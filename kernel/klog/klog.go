// Package klog is the kernel's printf. It does not depend on fmt or the
// heap so it can run before the allocator is up and from trap context.
package klog

// Sink receives formatted output one byte at a time.
type Sink func(c byte)

var out Sink = defaultSink

// SetOutput replaces the sink and returns the previous one.
func SetOutput(s Sink) Sink {
	prev := out
	if s == nil {
		s = discard
	}
	out = s
	return prev
}

func discard(byte) {}

func putc(c byte) { out(c) }

func printUint(num uint64, base uint64) {
	// 64 bits in base 2 is the widest case we print.
	var buf [64]byte
	i := 0

	if num == 0 {
		putc('0')
		return
	}
	for num > 0 {
		buf[i] = "0123456789abcdef"[num%base]
		i++
		num /= base
	}
	for i = i - 1; i >= 0; i-- {
		putc(buf[i])
	}
}

func printInt(num int64) {
	if num < 0 {
		putc('-')
		// -MinInt64 overflows; the uint64 conversion gets it right.
		printUint(uint64(-(num+1))+1, 10)
		return
	}
	printUint(uint64(num), 10)
}

func printString(str string) {
	for i := 0; i < len(str); i++ {
		putc(str[i])
	}
}

func printSigned(arg interface{}) bool {
	switch v := arg.(type) {
	case int:
		printInt(int64(v))
	case int8:
		printInt(int64(v))
	case int16:
		printInt(int64(v))
	case int32:
		printInt(int64(v))
	case int64:
		printInt(v)
	default:
		return printUnsigned(arg, 10)
	}
	return true
}

func printUnsigned(arg interface{}, base uint64) bool {
	switch v := arg.(type) {
	case uint:
		printUint(uint64(v), base)
	case uint8:
		printUint(uint64(v), base)
	case uint16:
		printUint(uint64(v), base)
	case uint32:
		printUint(uint64(v), base)
	case uint64:
		printUint(v, base)
	case uintptr:
		printUint(uint64(v), base)
	case int:
		if v < 0 {
			return false
		}
		printUint(uint64(v), base)
	default:
		return false
	}
	return true
}

// Printf supports %d %u %x %p %s %c and %%. A verb whose argument is
// missing or of the wrong type prints as %!verb.
func Printf(format string, args ...interface{}) {
	argIdx := 0
	next := func() (interface{}, bool) {
		if argIdx >= len(args) {
			return nil, false
		}
		a := args[argIdx]
		argIdx++
		return a, true
	}

	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			putc(format[i])
			continue
		}
		i++
		verb := format[i]
		if verb == '%' {
			putc('%')
			continue
		}

		ok := false
		switch verb {
		case 'd':
			if a, has := next(); has {
				ok = printSigned(a)
			}
		case 'u':
			if a, has := next(); has {
				ok = printUnsigned(a, 10)
			}
		case 'x':
			if a, has := next(); has {
				ok = printUnsigned(a, 16)
			}
		case 'p':
			if a, has := next(); has {
				printString("0x")
				ok = printUnsigned(a, 16)
			}
		case 's':
			if a, has := next(); has {
				switch v := a.(type) {
				case string:
					printString(v)
					ok = true
				case interface{ String() string }:
					printString(v.String())
					ok = true
				}
			}
		case 'c':
			if a, has := next(); has {
				switch v := a.(type) {
				case byte:
					putc(v)
					ok = true
				case rune:
					putc(byte(v))
					ok = true
				case int:
					putc(byte(v))
					ok = true
				}
			}
		default:
			putc('%')
			putc(verb)
			continue
		}
		if !ok {
			putc('%')
			putc('!')
			putc(verb)
		}
	}
}

// Panicf prints the message to the sink and panics. The panic value is
// the bare format string; the formatted text is only on the console.
func Panicf(format string, args ...interface{}) {
	printString("panic: ")
	Printf(format, args...)
	putc('\n')
	panic(format)
}
