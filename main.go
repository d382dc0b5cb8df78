package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/Marvin-Remiigius/AI-Traffic-Management/clock"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/entity/vehicle"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/simulator"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/task"
	"github.com/Marvin-Remiigius/AI-Traffic-Management/utils/config"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var c config.Config
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Panic("config file or config data must be specified")
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	// 外部引擎替身：环路模拟器，同时充当应急车辆注入的协作方
	sim := simulator.NewCross(c.Simulator, c.Control.Step.Interval)
	dispatcher := vehicle.NewRandomDispatcher(c.Dispatch, sim)

	engine := task.New(sim, c, dispatcher, nil)
	ck := clock.New(c.Control.Step)
	if err := engine.Run(ck); err != nil {
		log.Panicf("engine run err: %v", err)
	}
	log.Infof("run complete at %s, %d vehicles still queued", ck, sim.TotalQueued())
}
