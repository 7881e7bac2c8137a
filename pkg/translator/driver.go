package translator

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/codewriter"
	"hackforge.io/n2t/pkg/vm"
)

// ----------------------------------------------------------------------------
// Translator Driver

// Unit is one .vm translation unit the Driver has been asked to translate, already
// parsed into its Module.
type Unit struct {
	Namespace string // The file's base name without extension, used for 'static' symbols
	Module    vm.Module
}

// Driver orchestrates the Code Writer (component H) across every Unit handed to it,
// logging its progress through logger as it goes.
type Driver struct {
	logger *logrus.Logger
}

// NewDriver returns a Driver that logs through logger. Passing nil disables logging
// (every call becomes a no-op), which keeps the Driver usable from tests without
// spamming stderr.
func NewDriver(logger *logrus.Logger) *Driver {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(discard{})
	}
	return &Driver{logger: logger}
}

// discard silently drops every write, used to back a logger the caller opted out of.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Translate lowers every Unit to Assembler statements and concatenates the result,
// prefixed with the bootstrap sequence. Units are processed in the lexicographic order
// of their Namespace, so translating the same set of files always produces byte-for-byte
// identical output regardless of the order the caller discovered them in (directory
// listings are not guaranteed to come back sorted).
func (d *Driver) Translate(units []Unit) ([]asm.Statement, error) {
	ordered := make([]Unit, len(units))
	copy(ordered, units)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Namespace < ordered[j].Namespace })

	out := codewriter.Bootstrap()
	d.logger.WithField("units", len(ordered)).Info("starting translation")

	for _, unit := range ordered {
		d.logger.WithField("namespace", unit.Namespace).Debug("translating unit")

		writer := codewriter.NewWriter(unit.Namespace)
		stmts, err := writer.Write(unit.Module)
		if err != nil {
			return nil, errors.Wrapf(err, "translating %q", unit.Namespace)
		}

		out = append(out, stmts...)
	}

	d.logger.WithField("instructions", len(out)).Info("translation complete")
	return out, nil
}

// Namespace derives the static segment namespace a .vm file translates under: its base
// name with the extension stripped (e.g. "Main.vm" -> "Main").
func Namespace(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
