package todo

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

func benchmarkTasks(n int) []*Task {
	tasks := make([]*Task, n)
	start := MustParseDate("01-01-2025")
	for i := range tasks {
		tasks[i] = NewTask(
			fmt.Sprintf("Task %d", i),
			"Some details that are moderately long to mimic real notes",
			start.AddDays(i%365),
		)
	}
	return tasks
}

func BenchmarkEncode(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		tasks := benchmarkTasks(n)
		b.Run(fmt.Sprintf("tasks=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := Encode(io.Discard, tasks); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		var buf bytes.Buffer
		if err := Encode(&buf, benchmarkTasks(n)); err != nil {
			b.Fatal(err)
		}
		data := buf.Bytes()
		b.Run(fmt.Sprintf("tasks=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Decode(bytes.NewReader(data), "bench"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
