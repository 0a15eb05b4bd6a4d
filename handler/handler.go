package handler

import (
	"github.com/cyberes/diagnostico-relay/logging"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
