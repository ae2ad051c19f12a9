package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/akinalp/partfinder/pkg"
	"github.com/sirupsen/logrus"
)

// Recover, handler'daki panic'i yakalar ve 500 döner.
// Tek bir başarısız istek process'i asla düşürmemeli; detay sadece log'a gider.
func Recover(log logrus.FieldLogger) func(http.Handler) http.Handler {
	log = log.WithField("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// Bağlantı kesildi sinyali: yeniden fırlat, net/http halleder.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(logrus.Fields{
					"request_id": RequestIDFromContext(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				pkg.ErrorWithMessage(w, http.StatusInternalServerError, pkg.InternalErrorMessage)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
