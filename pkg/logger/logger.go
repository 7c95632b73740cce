package logger

import (
  log "github.com/sirupsen/logrus"
  "github.com/ushakovn/shopscraper/pkg/env"
)

type formatter struct {
  format log.Formatter
  fields map[string]any
}

func (f formatter) Format(entry *log.Entry) ([]byte, error) {
  for k, v := range f.fields {
    if _, exists := entry.Data[k]; !exists {
      entry.Data[k] = v
    }
  }
  return f.format.Format(entry)
}

type Options struct {
  Fields  map[string]any
  Verbose bool
}

func Init() {
  InitWithOptions(Options{})
}

func InitWithOptions(opts Options) {
  var (
    format log.Formatter
    caller bool
  )

  if env.IsProduction() {
    format = new(log.JSONFormatter)
    caller = true
  } else {
    format = &log.TextFormatter{FullTimestamp: true}
    caller = false
  }

  fields := opts.Fields
  if fields == nil {
    fields = map[string]any{}
  }

  level := log.InfoLevel
  if opts.Verbose {
    level = log.DebugLevel
  }

  log.SetFormatter(formatter{
    fields: fields,
    format: format,
  })
  log.SetLevel(level)
  log.SetReportCaller(caller)
}
