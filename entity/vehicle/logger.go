package vehicle

import "github.com/sirupsen/logrus"

// log vehicle模块的日志记录器
var log = logrus.WithField("module", "vehicle")
