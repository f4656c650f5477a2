package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("poll_id", "p1").Info("poll created")
	assert.Contains(t, buf.String(), "poll_id=p1")
	assert.Contains(t, buf.String(), `msg="poll created"`)
}

func TestNewUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", &buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
