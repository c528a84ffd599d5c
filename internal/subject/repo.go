package subject

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ThamannaGM/Assignment-Tracker/internal/model"
)

var (
	ErrNotFound       = errors.New("subject not found")
	ErrEmptyName      = errors.New("subject name is required")
	ErrEmptyColor     = errors.New("subject color is required")
	ErrUnknownColor   = errors.New("color is not in the palette")
	ErrDuplicateName  = errors.New("subject name already in use")
	ErrDuplicateColor = errors.New("subject color already in use")
)

// PaletteColor annotates one palette entry with whether a subject already
// uses it, so the UI can offer only free swatches.
type PaletteColor struct {
	Color string `json:"color"`
	Used  bool   `json:"used"`
}

type Repo interface {
	Create(name, color string) (model.Subject, error)
	Get(id model.SubjectID) (model.Subject, error)
	// ByName resolves a subject by exact (case-sensitive) name. Assignments
	// snapshot their color through this lookup.
	ByName(name string) (model.Subject, bool)
	List() ([]model.Subject, error)
	Remove(id model.SubjectID) error
	PaletteUsage() []PaletteColor
}

func newID() model.SubjectID {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return model.SubjectID("sub_" + hex.EncodeToString(b[:]))
}

func paletteHas(palette []string, color string) bool {
	for _, c := range palette {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}

// validateNew enforces the registry invariants: names unique case-sensitive,
// colors drawn from the palette and unique case-insensitive.
func validateNew(existing []model.Subject, palette []string, name, color string) error {
	if name == "" {
		return ErrEmptyName
	}
	if color == "" {
		return ErrEmptyColor
	}
	if !paletteHas(palette, color) {
		return ErrUnknownColor
	}
	for _, s := range existing {
		if s.Name == name {
			return ErrDuplicateName
		}
		if strings.EqualFold(s.Color, color) {
			return ErrDuplicateColor
		}
	}
	return nil
}

func paletteUsage(palette []string, existing []model.Subject) []PaletteColor {
	out := make([]PaletteColor, 0, len(palette))
	for _, c := range palette {
		used := false
		for _, s := range existing {
			if strings.EqualFold(s.Color, c) {
				used = true
				break
			}
		}
		out = append(out, PaletteColor{Color: c, Used: used})
	}
	return out
}
