package helper

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			return float32(f)
		}
	}
	return def
}

// batas ukuran file bukti transfer / avatar
var MaxUploadSize = int64(5 * 1024 * 1024)

/* =======================================================================
   Konfigurasi WebP (ENV-Driven)
======================================================================= */

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	TargetKB int     // 0 = non-aktif (pakai Quality saja)
	Quality  float32 // quality awal
	MinQ     float32 // min quality utk binary search
	MaxQ     float32 // max quality utk binary search
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:     envInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:     envInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB: envInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:  envFloat("IMAGE_WEBP_QUALITY", 80),
		MinQ:     envFloat("IMAGE_WEBP_MIN_Q", 45),
		MaxQ:     envFloat("IMAGE_WEBP_MAX_Q", 85),
	}
}

// AvatarWebPOptions: avatar cukup kecil
func AvatarWebPOptions() WebPOptions {
	o := DefaultWebPOptionsFromEnv()
	o.MaxW, o.MaxH = 512, 512
	return o
}

/* =======================================================================
   Decode (jpeg/png/webp) + auto-orient EXIF
   Foto struk dari HP sering punya tag orientasi; tanpa ini hasilnya miring.
======================================================================= */

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("format tidak didukung: %w", err)
	}
	return img, nil
}

/* =======================================================================
   Resize (keep aspect). CatmullRom.
======================================================================= */

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := max(int(math.Round(float64(w)*scale)), 1)
	nh := max(int(math.Round(float64(h)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

/* =======================================================================
   Encode WebP
   - TargetKB > 0 → binary search quality sampai <= target
   - TargetKB = 0 → encode sekali dengan Quality
======================================================================= */

func encodeQ(img image.Image, q float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	if opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(img, q)
	}

	target := opt.TargetKB * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}
	if low > high {
		low, high = high, low
	}

	var best []byte
	for i := 0; i < 7; i++ {
		q := (low + high) / 2
		data, err := encodeQ(img, q)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = q // masih muat → coba quality lebih tinggi
		} else {
			high = q
		}
	}
	if best == nil {
		// tidak pernah muat target → pakai quality minimum
		return encodeQ(img, low)
	}
	return best, nil
}

// ConvertToWebP: decode → auto-orient → resize → encode webp
func ConvertToWebP(all []byte, opts WebPOptions) ([]byte, error) {
	img, err := decodeImage(all)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, opts.MaxW, opts.MaxH)
	return encodeToWebP(img, opts)
}
