package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("gmail_threads_list").
		WithResource(ResourceThreads).
		WithOperation(OperationList).
		WithAccount("work").
		WithResourceID("t1").
		Build()

	want := map[attribute.Key]string{
		SpanAttrTool:       "gmail_threads_list",
		SpanAttrResource:   ResourceThreads,
		SpanAttrOperation:  OperationList,
		SpanAttrAccount:    "work",
		SpanAttrResourceID: "t1",
	}

	if len(attrs) != len(want) {
		t.Fatalf("Expected %d attributes, got %d", len(want), len(attrs))
	}
	for _, attr := range attrs {
		if want[attr.Key] != attr.Value.AsString() {
			t.Errorf("Attribute %s = %q, want %q", attr.Key, attr.Value.AsString(), want[attr.Key])
		}
	}
}

func TestSpanAttributeBuilder_SkipsEmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithAccount("").
		WithResourceID("").
		Build()

	if len(attrs) != 0 {
		t.Errorf("Empty account and resource ID should be skipped, got %v", attrs)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test.operation")
	defer span.End()

	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	if ctx == nil {
		t.Fatal("StartSpan returned nil context")
	}
}

func TestStartGmailSpan(t *testing.T) {
	ctx, span := StartGmailSpan(context.Background(), ResourceMessages, OperationSend)
	defer span.End()

	if span == nil {
		t.Fatal("StartGmailSpan returned nil span")
	}

	// With no provider configured the span is non-recording and the trace ID
	// is invalid.
	if id := GetTraceID(ctx); id != "" {
		t.Logf("trace id: %s", id)
	}
}

func TestSetSpanError(t *testing.T) {
	_, span := StartToolSpan(context.Background(), "gmail_drafts_create")
	defer span.End()

	// Must not panic on nil or non-nil errors.
	SetSpanError(span, nil)
	SetSpanError(span, errors.New("boom"))
	SetSpanSuccess(span)
}
