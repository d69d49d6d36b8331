package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		p := NoopPipelineHooks{}
		p.OnStageStart(ctx, StageDecode)
		p.OnStageComplete(ctx, StageDecode, 12, time.Second, nil)

		NoopServerHooks{}.OnResponse(ctx, "GET", "/report.md", 200, time.Millisecond)
		NoopSinkHooks{}.OnBatch(ctx, "neo4j", 1000, time.Second, nil)
	})
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.IsType(t, NoopPipelineHooks{}, Pipeline())
	assert.IsType(t, NoopServerHooks{}, Server())
	assert.IsType(t, NoopSinkHooks{}, Sink())

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	assert.Same(t, customPipeline, Pipeline())

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	assert.Same(t, customServer, Server())

	customSink := &testSinkHooks{}
	SetSinkHooks(customSink)
	assert.Same(t, customSink, Sink())

	Reset()
	assert.IsType(t, NoopPipelineHooks{}, Pipeline(), "Reset() should restore the no-op pipeline hooks")
	assert.IsType(t, NoopSinkHooks{}, Sink(), "Reset() should restore the no-op sink hooks")
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	assert.Same(t, custom, Pipeline())
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testServerHooks struct{ NoopServerHooks }
type testSinkHooks struct{ NoopSinkHooks }
