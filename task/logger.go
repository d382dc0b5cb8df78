package task

import "github.com/sirupsen/logrus"

// log 引擎会话的日志记录器
var log = logrus.WithField("module", "engine")
