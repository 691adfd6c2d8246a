package pipeline

// stageSpan returns the sub-range of overall progress allotted to a stage.
// The allotments come from configuration, not from the providers: the
// orchestrator owns the rescaling arithmetic.
func (p *implPipeline) stageSpan(stage Stage) (lo, hi float64) {
	fw := p.cfg.Pipeline.FetchWeight
	tw := p.cfg.Pipeline.TranscribeWeight
	switch stage {
	case StageFetch:
		return 0, fw
	case StageTranscribe:
		return fw, fw + tw
	default:
		return fw + tw, 1.0
	}
}

// emit rescales a stage-local fraction in [0,1] into the overall range and
// forwards it to the sink.
func (p *implPipeline) emit(stage Stage, fraction float64, message string) {
	if p.onProgress == nil {
		return
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	lo, hi := p.stageSpan(stage)
	p.onProgress(ProgressEvent{
		Stage:    stage,
		Fraction: lo + fraction*(hi-lo),
		Message:  message,
	})
}
