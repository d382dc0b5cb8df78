package junction

import "github.com/sirupsen/logrus"

// log junction模块的日志记录器
var log = logrus.WithField("module", "junction")
