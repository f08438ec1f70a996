// Package weeks adalah satu-satunya tempat hitungan minggu.
// Minggu dimulai hari Minggu; minggu ke-1 dimulai 1 Januari (bisa pendek),
// nomor = ceil((hari sejak 1 Jan + weekday 1 Jan + 1) / 7).
package weeks

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const labelPrefix = "Tuần "

// Ref satu bucket minggu dalam satu tahun.
type Ref struct {
	Year   int `json:"year"`
	Number int `json:"number"`
}

// Of menghitung bucket minggu dari tanggal (pakai lokasi t apa adanya).
func Of(t time.Time) Ref {
	return Ref{Year: t.Year(), Number: number(t)}
}

// Label "Tuần {n}" untuk tanggal t.
func Label(t time.Time) string {
	return Of(t).Label()
}

func number(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	startDow := int(jan1.Weekday())
	return (days + startDow + 1 + 6) / 7
}

// LastWeek nomor minggu terakhir di tahun (53 atau 54 dengan rumus di atas).
func LastWeek(year int) int {
	return number(time.Date(year, time.December, 31, 12, 0, 0, 0, time.UTC))
}

func (r Ref) Label() string {
	return labelPrefix + strconv.Itoa(r.Number)
}

// Key label yang unik lintas tahun, mis. "2026/Tuần 7".
func (r Ref) Key() string {
	return fmt.Sprintf("%d/%s", r.Year, r.Label())
}

func (r Ref) String() string { return r.Key() }

func (r Ref) Valid() bool {
	return r.Year > 0 && r.Number >= 1 && r.Number <= LastWeek(r.Year)
}

func (r Ref) Next() Ref {
	if r.Number >= LastWeek(r.Year) {
		return Ref{Year: r.Year + 1, Number: 1}
	}
	return Ref{Year: r.Year, Number: r.Number + 1}
}

func (r Ref) Prev() Ref {
	if r.Number <= 1 {
		return Ref{Year: r.Year - 1, Number: LastWeek(r.Year - 1)}
	}
	return Ref{Year: r.Year, Number: r.Number - 1}
}

// Add geser n minggu (boleh negatif), melewati batas tahun dengan benar.
func (r Ref) Add(n int) Ref {
	out := r
	for ; n > 0; n-- {
		out = out.Next()
	}
	for ; n < 0; n++ {
		out = out.Prev()
	}
	return out
}

func (r Ref) Before(o Ref) bool {
	if r.Year != o.Year {
		return r.Year < o.Year
	}
	return r.Number < o.Number
}

// StartDate hari pertama bucket (minggu ke-1 selalu 1 Januari).
func (r Ref) StartDate(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	jan1 := time.Date(r.Year, time.January, 1, 0, 0, 0, 0, loc)
	if r.Number <= 1 {
		return jan1
	}
	offset := 7*(r.Number-1) - int(jan1.Weekday())
	return jan1.AddDate(0, 0, offset)
}

// Window size minggu yang berakhir di end, urut dari yang paling lama.
func Window(end Ref, size int) []Ref {
	if size <= 0 {
		return []Ref{}
	}
	out := make([]Ref, size)
	cur := end
	for i := size - 1; i >= 0; i-- {
		out[i] = cur
		cur = cur.Prev()
	}
	return out
}

// ParseLabel "Tuần 7" → 7
func ParseLabel(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, labelPrefix) {
		return 0, fmt.Errorf("label minggu tidak valid: %q", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(s, labelPrefix)))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("label minggu tidak valid: %q", s)
	}
	return n, nil
}

// WeeksInMonth bucket yang hari pertamanya jatuh di bulan tsb.
func WeeksInMonth(year int, month time.Month) []Ref {
	out := make([]Ref, 0, 6)
	last := LastWeek(year)
	for n := 1; n <= last; n++ {
		r := Ref{Year: year, Number: n}
		if r.StartDate(time.UTC).Month() == month {
			out = append(out, r)
		}
	}
	return out
}
