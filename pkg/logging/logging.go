// Package logging, uygulama genelinde kullanılan logrus logger'ını kurar.
//
// Component'ler *logrus.Logger yerine logrus.FieldLogger alır; böylece
// main'de "component" alanı eklenmiş alt logger'lar dağıtılabilir ve
// testlerde sessiz bir logger verilebilir.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New, seviye ve format ile yapılandırılmış bir logger döner.
// format: "json" veya "text" (varsayılan).
func New(level, format string) (*logrus.Logger, error) {
	return NewWithOutput(level, format, os.Stdout)
}

// NewWithOutput, New ile aynı; çıktı hedefi dışarıdan verilir.
func NewWithOutput(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: use text or json", format)
	}

	return l, nil
}
