package pipeline

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

// UnionOption configures a Union.
type UnionOption func(u *Union)

// UnionConcurrency bounds how many sub-stages may run their fit and transform
// calls at the same time. Zero or one keeps execution sequential. Results and
// column order are unaffected.
func UnionConcurrency(concurrent int) UnionOption {
	return func(u *Union) {
		u.concurrent = concurrent
	}
}

// UnionOptions attaches pipeline options, such as tracers and measures, to a
// union.
func UnionOptions(opts ...model.PipelineOption) UnionOption {
	return func(u *Union) {
		u.opts = append(u.opts, opts...)
	}
}

func prepareOptions(opts []model.PipelineOption, details []*model.StageInfo) error {
	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
		for _, info := range details {
			err = opt.PrepareStage(info)
			if err != nil {
				return errors.Wrapf(err, "unable to prepare stage %q", info.Name)
			}
		}
	}

	return nil
}

func finishOptions(opts []model.PipelineOption) error {
	for _, opt := range opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

func notifyStart(opts []model.PipelineOption, info *model.StageInfo, op model.Operation) {
	for _, opt := range opts {
		opt.OnStageStart(info, op)
	}
}

func notifyEnd(opts []model.PipelineOption, info *model.StageInfo, op model.Operation, elapsed time.Duration) {
	for _, opt := range opts {
		opt.OnStageEnd(info, op, elapsed)
	}
}
