package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

func SetupLogging() *logrus.Logger {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Level: levelFromEnv(),
	}

	return &logger
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// OperationWrapper runs op with a LogData accumulator and emits start,
// complete and error entries around it, including the collected fields and
// timings.
func OperationWrapper(
	operationName string,
	log *logrus.Logger,
	op func(*LogData) error,
) error {
	logData := NewLogData(log)
	log.Infof("Operation.%v.Start", operationName)

	endTimer := logData.AddTiming("duration")
	err := op(logData)
	endTimer()

	if err != nil {
		logData.Log().WithError(err).Errorf("Operation.%v.Error", operationName)
		return err
	}

	logData.Log().Infof("Operation.%v.Complete", operationName)
	return nil
}
