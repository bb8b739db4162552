package logrus_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/slok/planboard/internal/log"
	loglogrus "github.com/slok/planboard/internal/log/logrus"
)

func TestLogrusWithValues(t *testing.T) {
	tests := map[string]struct {
		log    func(l log.Logger)
		expOut []string
	}{
		"Static values should be logged.": {
			log: func(l log.Logger) {
				l.WithValues(log.Kv{"svc": "ledger"}).Infof("saved %d tasks", 3)
			},
			expOut: []string{`"msg":"saved 3 tasks"`, `"svc":"ledger"`},
		},

		"Context values should be logged.": {
			log: func(l log.Logger) {
				ctx := l.SetValuesOnCtx(context.Background(), log.Kv{"project": "p1"})
				l.WithCtxValues(ctx).Warningf("no geometry")
			},
			expOut: []string{`"msg":"no geometry"`, `"project":"p1"`, `"level":"warning"`},
		},

		"Debug should not be logged on info level.": {
			log: func(l log.Logger) {
				l.Debugf("hidden")
			},
			expOut: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var b bytes.Buffer
			l := logrus.New()
			l.Out = &b
			l.SetFormatter(&logrus.JSONFormatter{})

			test.log(loglogrus.NewLogrus(logrus.NewEntry(l)))

			if test.expOut == nil {
				assert.Empty(t, b.String())
				return
			}
			for _, exp := range test.expOut {
				assert.Contains(t, b.String(), exp)
			}
		})
	}
}
