package harness

import (
	"fmt"
	"reflect"
	"strings"
)

type Field struct {
	Name  string
	Value any
}

// Stats is a snapshot of a Tracker.
type Stats struct {
	Allocated   int `stat:"allocated_blocks"`
	Released    int `stat:"released_blocks"`
	LiveBlocks  int `stat:"live_blocks"`
	LiveBytes   int `stat:"live_bytes"`
	Failures    int `stat:"injected_failures"`
	BadReleases int `stat:"bad_releases"`
	FailRate    int `stat:"fail_rate_percent"`
}

func (s *Stats) String() string {
	buf := strings.Builder{}
	buf.WriteString("# Allocator\n")
	for _, field := range s.Fields() {
		buf.WriteString(field.Name)
		buf.WriteString(":")
		buf.WriteString(fmt.Sprintf("%v", field.Value))
		buf.WriteString("\n")
	}
	return buf.String()
}

func (s *Stats) Fields() []Field {
	fields := []Field{}
	val := reflect.ValueOf(s).Elem()
	typ := reflect.TypeOf(s).Elem()

	for i := 0; i < val.NumField(); i += 1 {
		f := val.Field(i)
		tag := typ.Field(i).Tag.Get("stat")
		if tag != "" {
			fields = append(fields, Field{Name: tag, Value: f.Interface()})
		}
	}
	return fields
}
