package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// tfLogger routes reconciler logs to Terraform's provider log for the current operation.
type tfLogger struct{ ctx context.Context }

func newTFLogger(ctx context.Context) logging.Logger {
	return tfLogger{ctx: tflog.SetField(ctx, "logger", logging.LoggerName)}
}

func (l tfLogger) Debug(msg string, f logging.Fields) { tflog.Debug(l.ctx, msg, f) }
func (l tfLogger) Info(msg string, f logging.Fields)  { tflog.Info(l.ctx, msg, f) }
func (l tfLogger) Warn(msg string, f logging.Fields)  { tflog.Warn(l.ctx, msg, f) }
func (l tfLogger) Error(msg string, f logging.Fields) { tflog.Error(l.ctx, msg, f) }
