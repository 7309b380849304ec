package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 60, B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestComposeKeepsDimensionsAndDrawsText(t *testing.T) {
	src := testImage(t, 640, 480)
	out, err := Compose(src, "Abebe", "Kebede")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 640 || h != 480 {
		t.Fatalf("compose resized image to %dx%d", w, h)
	}
	if bytes.Equal(out, src) {
		t.Fatal("compose output identical to input, no text drawn")
	}
}

func TestComposeRejectsGarbage(t *testing.T) {
	if _, err := Compose([]byte("not an image"), "a", "b"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestThumbnailFitsBounds(t *testing.T) {
	out, err := Thumbnail(testImage(t, 1200, 600), 300)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 300 || h != 150 {
		t.Fatalf("thumbnail = %dx%d, want 300x150", w, h)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	out, err := Thumbnail(testImage(t, 120, 80), 300)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 120 || h != 80 {
		t.Fatalf("small image rescaled to %dx%d", w, h)
	}
}

func TestUsersByDayChart(t *testing.T) {
	day := func(s string) time.Time {
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse day: %v", err)
		}
		return ts
	}
	out, err := UsersByDay(map[time.Time]int{
		day("2026-08-01"): 3,
		day("2026-08-02"): 7,
		day("2026-08-03"): 5,
	})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if w, h := decodeSize(t, out); w != 800 || h != 400 {
		t.Fatalf("chart = %dx%d", w, h)
	}
}

func TestUsersByDayEmpty(t *testing.T) {
	if _, err := UsersByDay(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestBucketByDay(t *testing.T) {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	byDay := BucketByDay([]time.Time{
		base,
		base.Add(2 * time.Hour),
		base.Add(26 * time.Hour),
		{},
	})
	if len(byDay) != 2 {
		t.Fatalf("buckets = %v", byDay)
	}
	if byDay[base.Truncate(24*time.Hour)] != 2 {
		t.Fatalf("first day count = %d", byDay[base.Truncate(24*time.Hour)])
	}
}
