package ioformat

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteOutputRecords writes the per-car result records in the `#(...)`
// header plus parenthesized-tuple format spec.md §6 specifies for output:
// (car_id, start_tick, road_id_1, …, road_id_k). Record field counts vary
// per car (each car's own route length), so unlike the fixed-arity input
// formats the header only names the common prefix.
func WriteOutputRecords(w io.Writer, records []OutputRecord) error {
	if _, err := io.WriteString(w, "#(car_id,start_tick,road_id...)\n"); err != nil {
		return err
	}
	for _, rec := range records {
		fields := make([]string, 0, 2+len(rec.Roads))
		fields = append(fields, strconv.FormatInt(int64(rec.CarID), 10))
		fields = append(fields, strconv.Itoa(rec.StartTick))
		for _, rid := range rec.Roads {
			fields = append(fields, strconv.FormatInt(int64(rid), 10))
		}
		if _, err := fmt.Fprintf(w, "(%s)\n", strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}
