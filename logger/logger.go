package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
)

// Level 日志级别类型
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// 级别名称映射
var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// Format 输出格式
type Format int

const (
	FormatJSON Format = iota
	FormatText
)

// Field 日志字段结构
type Field struct {
	Key   string
	Value any
}

// Logger 结构化日志器
type Logger struct {
	level        int64 // 原子操作的日志级别
	format       Format
	logger       *log.Logger
	logFile      *os.File
	enableCaller bool
	callerSkip   int
}

var defaultLogger *Logger

func init() {
	defaultLogger = createLogger()
}

// reservedKeys 系统字段，动态字段中出现时跳过
var reservedKeys = map[string]struct{}{
	"level": {}, "log_level": {}, "timestamp": {}, "message": {},
	"file": {}, "log_file": {}, "func": {},
}

// createLogger 按环境变量创建logger实例
func createLogger() *Logger {
	l := &Logger{
		level:      int64(INFO),
		format:     FormatJSON,
		callerSkip: 3,
	}

	if debug := os.Getenv("DEBUG"); debug == "true" || debug == "1" {
		l.level = int64(DEBUG)
		l.enableCaller = true
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if level, err := ParseLevel(lvl); err == nil {
			l.level = int64(level)
			if level == DEBUG {
				l.enableCaller = true
			}
		}
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
		l.format = FormatText
	}
	if enableCaller := os.Getenv("LOG_ENABLE_CALLER"); enableCaller == "true" || enableCaller == "1" {
		l.enableCaller = true
	}
	if callerSkip := os.Getenv("LOG_CALLER_SKIP"); callerSkip != "" {
		if skip, err := strconv.Atoi(callerSkip); err == nil && skip > 0 {
			l.callerSkip = skip
		}
	}

	writers := []io.Writer{os.Stdout}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		if file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			l.logFile = file
			if os.Getenv("LOG_CONSOLE") == "false" {
				writers = []io.Writer{file}
			} else {
				writers = append(writers, file)
			}
		} else {
			fmt.Fprintf(os.Stderr, "无法打开日志文件 %s: %v\n", logFile, err)
		}
	}

	l.logger = log.New(io.MultiWriter(writers...), "", 0)
	return l
}

// New 创建写入指定输出的logger，主要用于测试
func New(w io.Writer, level Level, format Format) *Logger {
	return &Logger{
		level:      int64(level),
		format:     format,
		logger:     log.New(w, "", 0),
		callerSkip: 3,
	}
}

// ParseLevel 从字符串解析日志级别
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", s)
	}
}

// ParseFormat 解析输出格式，未知值按 JSON 处理
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "text") {
		return FormatText
	}
	return FormatJSON
}

func (l *Logger) shouldLog(level Level) bool {
	return atomic.LoadInt64(&l.level) <= int64(level)
}

// entry 单条日志
type entry struct {
	timestamp string
	level     string
	file      string
	fn        string
	message   string
	fields    map[string]any
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if !l.shouldLog(level) {
		return
	}

	e := &entry{
		timestamp: time.Now().Format("2006-01-02T15:04:05.000Z07:00"),
		level:     levelNames[level],
		message:   msg,
		fields:    make(map[string]any, len(fields)),
	}

	if l.enableCaller {
		if pc, file, line, ok := runtime.Caller(l.callerSkip); ok {
			if idx := strings.LastIndex(file, "/"); idx >= 0 {
				file = file[idx+1:]
			}
			e.file = fmt.Sprintf("%s:%d", file, line)
			if fn := runtime.FuncForPC(pc); fn != nil {
				name := fn.Name()
				if dot := strings.LastIndex(name, "."); dot >= 0 && dot < len(name)-1 {
					name = name[dot+1:]
				}
				e.fn = name
			}
		}
	}

	for _, field := range fields {
		if _, reserved := reservedKeys[field.Key]; reserved {
			continue
		}
		e.fields[field.Key] = field.Value
	}

	if l.format == FormatText {
		l.logger.Println(formatText(e))
	} else {
		l.logger.Println(formatJSON(e))
	}

	if level == FATAL {
		os.Exit(1)
	}
}

func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatJSON 固定字段顺序：timestamp > level > file > func > message > 其他字段
func formatJSON(e *entry) string {
	var b strings.Builder

	b.WriteString(`{"timestamp":"`)
	b.WriteString(e.timestamp)
	b.WriteString(`","level":"`)
	b.WriteString(e.level)
	b.WriteString(`"`)

	if e.file != "" {
		b.WriteString(`,"file":"`)
		b.WriteString(e.file)
		b.WriteString(`"`)
	}
	if e.fn != "" {
		b.WriteString(`,"func":"`)
		b.WriteString(e.fn)
		b.WriteString(`"`)
	}

	b.WriteString(`,"message":`)
	if escaped, err := sonic.MarshalString(e.message); err == nil {
		b.WriteString(escaped)
	} else {
		b.WriteString(`""`)
	}

	for _, k := range sortedKeys(e.fields) {
		b.WriteString(`,"`)
		b.WriteString(k)
		b.WriteString(`":`)
		if fieldJSON, err := sonic.Marshal(e.fields[k]); err == nil {
			b.Write(fieldJSON)
		} else {
			b.WriteString(`null`)
		}
	}

	b.WriteString(`}`)
	return b.String()
}

// formatText 人类可读格式：时间 级别 [文件] 消息 key=value...
func formatText(e *entry) string {
	var b strings.Builder

	b.WriteString(e.timestamp)
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("%-5s", e.level))
	if e.file != "" {
		b.WriteString(" [")
		b.WriteString(e.file)
		b.WriteString("]")
	}
	b.WriteString(" ")
	b.WriteString(e.message)

	for _, k := range sortedKeys(e.fields) {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		switch v := e.fields[k].(type) {
		case string:
			b.WriteString(strconv.Quote(v))
		case nil:
			b.WriteString("<nil>")
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}

// SetLevel 设置默认logger的日志级别
func SetLevel(level Level) {
	atomic.StoreInt64(&defaultLogger.level, int64(level))
}

// Options 配置文件中的日志设置，零值字段保持默认logger不变
type Options struct {
	Level   string
	Format  string
	File    string
	Console bool
}

// Configure 用配置文件中的日志设置覆盖默认logger
// File 非空时追加写入该文件，Console 为 false 时不再写标准输出
func Configure(opts Options) error {
	if opts.Level != "" {
		if lvl, err := ParseLevel(opts.Level); err == nil {
			SetLevel(lvl)
			if lvl == DEBUG {
				defaultLogger.enableCaller = true
			}
		}
	}
	if opts.Format != "" {
		defaultLogger.format = ParseFormat(opts.Format)
	}
	if opts.File == "" {
		return nil
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("无法打开日志文件 %s: %w", opts.File, err)
	}
	writers := []io.Writer{file}
	if opts.Console {
		writers = append([]io.Writer{os.Stdout}, writers...)
	}
	if defaultLogger.logFile != nil {
		defaultLogger.logFile.Close()
	}
	defaultLogger.logFile = file
	defaultLogger.logger = log.New(io.MultiWriter(writers...), "", 0)
	return nil
}

// Close 关闭默认logger持有的日志文件
func Close() {
	if defaultLogger.logFile != nil {
		defaultLogger.logFile.Close()
		defaultLogger.logFile = nil
	}
}

// SetDefault 替换默认logger，返回旧实例
func SetDefault(l *Logger) *Logger {
	old := defaultLogger
	defaultLogger = l
	return old
}

func Debug(msg string, fields ...Field) {
	defaultLogger.log(DEBUG, msg, fields)
}

func Info(msg string, fields ...Field) {
	defaultLogger.log(INFO, msg, fields)
}

func Warn(msg string, fields ...Field) {
	defaultLogger.log(WARN, msg, fields)
}

func Error(msg string, fields ...Field) {
	defaultLogger.log(ERROR, msg, fields)
}

func Fatal(msg string, fields ...Field) {
	defaultLogger.log(FATAL, msg, fields)
}

// 字段构造函数
func String(key, val string) Field {
	return Field{Key: key, Value: val}
}

func Int(key string, val int) Field {
	return Field{Key: key, Value: val}
}

func Int64(key string, val int64) Field {
	return Field{Key: key, Value: val}
}

func Float64(key string, val float64) Field {
	return Field{Key: key, Value: val}
}

func Bool(key string, val bool) Field {
	return Field{Key: key, Value: val}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration 以毫秒记录耗时
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Value: val.Milliseconds()}
}

func Any(key string, val any) Field {
	return Field{Key: key, Value: val}
}

// Reinitialize 重新初始化默认logger（.env 加载或配置变更后调用）
func Reinitialize() {
	if defaultLogger.logFile != nil {
		defaultLogger.logFile.Close()
	}
	defaultLogger = createLogger()
}
