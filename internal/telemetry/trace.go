package telemetry

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

// NewNoopTrace 測試與 CLI 使用
func NewNoopTrace() *Trace {
	return &Trace{}
}

// newSampler 尊重上游的抽樣決定，自己開頭的 trace 才套用比例
func newSampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return NewNoopTrace(), func() {}, nil
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.Telemetry.Trace.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  60 * time.Second,
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(newSampler(conf.Telemetry.Trace.SampleRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
			semconv.ServiceVersion(conf.App.Version),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, cleanup, nil
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(
	ctx context.Context,
	spanName core.TraceSpanName,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan 同時支援 *gin.Context（handler）與 context.Context（service / repository）。
// 未給名稱時 handler 用 handler 名稱，其餘用呼叫者函式名稱。
func (t *Trace) WithSpan(parent any, name ...string) (context.Context, trace.Span, func(error)) {
	var (
		ctx  context.Context
		span trace.Span
	)
	switch p := parent.(type) {
	case *gin.Context:
		ctx, span = t.StartSpanForLayer(t.GetTraceContext(p), core.TraceSpanName(pickName(spanNameFromGin(p), name)))
		p.Set(core.ContextTraceKey, ctx)
	case context.Context:
		ctx, span = t.StartSpanForLayer(p, core.TraceSpanName(pickName(prettifyFuncName(callerFuncName(2)), name)))
	default:
		ctx, span = t.StartSpanForLayer(context.Background(), core.TraceSpanName(pickName("", name)))
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

// EndSpan 統一結束 span（含錯誤標註）
func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetTraceContext 給下游 middleware / handler 取得最新 ctx
func (t *Trace) GetTraceContext(c *gin.Context) context.Context {
	if ctx, ok := c.Get(core.ContextTraceKey); ok {
		if v, ok := ctx.(context.Context); ok {
			return v
		}
	}
	return c.Request.Context()
}

// ApplyTraceAttributes 依 `trace:"key[,omitempty]"` tag 把 struct 欄位寫入 span
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj any) {
	if span == nil || obj == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("ApplyTraceAttributes panic: %v", r))
		}
	}()
	span.SetAttributes(traceAttributes(reflect.ValueOf(obj))...)
}

func traceAttributes(val reflect.Value) []attribute.KeyValue {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	typ := val.Type()
	var attrs []attribute.KeyValue
	for i := 0; i < typ.NumField(); i++ {
		key, omitEmpty := parseTraceTag(typ.Field(i).Tag.Get("trace"))
		field := val.Field(i)
		if key == "" || !field.CanInterface() {
			continue
		}
		if omitEmpty && field.IsZero() {
			continue
		}
		attrs = append(attrs, fieldAttributes(key, field)...)
	}
	return attrs
}

func fieldAttributes(key string, field reflect.Value) []attribute.KeyValue {
	switch field.Kind() {
	case reflect.String:
		return []attribute.KeyValue{attribute.String(key, field.String())}
	case reflect.Bool:
		return []attribute.KeyValue{attribute.Bool(key, field.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []attribute.KeyValue{attribute.Int64(key, field.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []attribute.KeyValue{attribute.Int64(key, int64(field.Uint()))}
	case reflect.Float32, reflect.Float64:
		return []attribute.KeyValue{attribute.Float64(key, field.Float())}
	case reflect.Slice, reflect.Array:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		strs := make([]string, field.Len())
		for j := range strs {
			strs[j] = field.Index(j).String()
		}
		return []attribute.KeyValue{attribute.StringSlice(key, strs)}
	case reflect.Ptr:
		if field.IsNil() {
			return nil
		}
		return fieldAttributes(key, field.Elem())
	case reflect.Struct:
		return traceAttributes(field)
	case reflect.Map:
		if field.Type().Key().Kind() != reflect.String {
			return nil
		}
		var attrs []attribute.KeyValue
		for _, k := range field.MapKeys() {
			v := field.MapIndex(k)
			if v.Kind() == reflect.Interface {
				v = v.Elem()
			}
			if !v.IsValid() {
				continue
			}
			attrs = append(attrs, fieldAttributes(key+"."+k.String(), v)...)
		}
		return attrs
	}
	return nil
}

func parseTraceTag(tag string) (key string, omitEmpty bool) {
	if tag == "" || tag == "-" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return parts[0], omitEmpty
}

// ==== 名稱處理 ====

func pickName(fallback string, name []string) string {
	if len(name) > 0 && strings.TrimSpace(name[0]) != "" {
		return name[0]
	}
	if fallback == "" {
		return "unknown"
	}
	return fallback
}

func prettifyFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
	if i := strings.Index(full, "["); i >= 0 {
		if j := strings.Index(full, "]"); j > i {
			full = full[:i] + full[j+1:]
		}
	}
	return full
}

func spanNameFromGin(c *gin.Context) string {
	if hn := c.HandlerName(); hn != "" {
		return prettifyFuncName(hn)
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return c.Request.Method + " " + route
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}
