// Package wordcloud renders the most frequent words of a text as a PNG image.
//
// Words are laid out along an Archimedean spiral starting at the centre of
// the canvas: each word walks outwards until its bounding rectangle overlaps
// no word placed before it. Bigger words go first, so they end up in the middle.
package wordcloud

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/samber/lo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Width    = 800
	Height   = 400
	MaxWords = 100
	MinFont  = 10.0
	MaxFont  = 96.0

	// spiral tuning: angle step in radians and radius growth per radian
	spiralStep   = 0.1
	spiralGrowth = 1.6
	maxSteps     = 4000
	padding      = 2.0
)

// ErrRender means no image could be produced, usually because the text has
// no words worth plotting.
var ErrRender = errors.New("text too short or invalid for word cloud")

// WordCount is a word and how often it occurs.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// palette is applied by rank so the same text always gets the same colours.
var palette = []color.RGBA{
	{68, 1, 84, 255},
	{59, 82, 139, 255},
	{33, 145, 140, 255},
	{94, 201, 98, 255},
	{72, 40, 120, 255},
	{49, 104, 142, 255},
	{53, 183, 121, 255},
	{38, 130, 142, 255},
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}']+`)

// Renderer draws word clouds. Build one at startup: parsing the font is the
// expensive part and the parsed font is safe to share.
type Renderer struct {
	font *truetype.Font
}

// NewRenderer parses the embedded Go Regular font.
func NewRenderer() (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Renderer{font: f}, nil
}

// Frequencies counts the plottable words of text, most frequent first, at
// most MaxWords of them. Words are lower-cased; stopwords, pure numbers and
// single characters are dropped.
func Frequencies(text string) []WordCount {
	tokens := lo.FilterMap(wordPattern.FindAllString(strings.ToLower(text), -1), func(token string, _ int) (string, bool) {
		token = strings.TrimSuffix(strings.TrimSuffix(token, "'s"), "'")
		return token, len([]rune(token)) >= 2 && !isNumber(token) && !stopwords[token]
	})

	words := lo.MapToSlice(lo.CountValues(tokens), func(w string, c int) WordCount {
		return WordCount{Word: w, Count: c}
	})
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if len(words) > MaxWords {
		words = words[:MaxWords]
	}
	return words
}

// canvas is the drawable area every word must stay inside.
var canvas = image.Rect(0, 0, Width, Height)

// Render draws the cloud for text and returns it PNG-encoded.
func (r *Renderer) Render(text string) ([]byte, error) {
	words := Frequencies(text)
	if len(words) == 0 {
		return nil, ErrRender
	}

	dc := gg.NewContext(Width, Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	faces := make(map[float64]font.Face)
	faceFor := func(size float64) font.Face {
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(r.font, &truetype.Options{Size: size})
		faces[size] = f
		return f
	}

	maxCount := float64(words[0].Count)
	var placed []image.Rectangle

	for i, wc := range words {
		// Font size is proportional to frequency, never below MinFont.
		size := math.Max(MinFont, math.Round(MaxFont*float64(wc.Count)/maxCount))

		// Shrink until the word finds a free spot or hits the minimum size.
		for {
			dc.SetFontFace(faceFor(size))
			w, h := dc.MeasureString(wc.Word)
			if spot, ok := findSpot(w+padding, h+padding, placed); ok {
				dc.SetColor(palette[i%len(palette)])
				dc.DrawStringAnchored(wc.Word, float64(spot.Min.X)+padding/2, float64(spot.Min.Y)+padding/2, 0, 1)
				placed = append(placed, spot)
				break
			}
			if size <= MinFont {
				break
			}
			size = math.Max(MinFont, math.Floor(size*0.8))
		}
	}

	if len(placed) == 0 {
		return nil, ErrRender
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// findSpot walks the spiral from the canvas centre and returns the first
// w×h rectangle that stays on the canvas and overlaps nothing in placed.
func findSpot(w, h float64, placed []image.Rectangle) (image.Rectangle, bool) {
	size := image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
	if size.X > Width || size.Y > Height {
		return image.Rectangle{}, false
	}

	centre := image.Pt(Width/2, Height/2).Sub(size.Div(2))
	for step := 0; step < maxSteps; step++ {
		t := float64(step) * spiralStep
		// The canvas is twice as wide as it is tall; stretch the spiral to match.
		offset := image.Pt(
			int(math.Round(2*spiralGrowth*t*math.Cos(t))),
			int(math.Round(spiralGrowth*t*math.Sin(t))),
		)
		spot := image.Rectangle{Min: centre.Add(offset), Max: centre.Add(offset).Add(size)}
		if !spot.In(canvas) {
			continue
		}
		if !lo.SomeBy(placed, spot.Overlaps) {
			return spot, true
		}
	}
	return image.Rectangle{}, false
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
