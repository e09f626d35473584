package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"zero", 0, 10},
		{"negative", -1, 10},
		{"custom", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "title") {
		t.Error("nil sampler should always log")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	steps := []struct {
		percent float64
		subject string
		want    bool
	}{
		{0.1, "Video_A", true},
		{5, "Video_A", false},
		{10.2, "Video_A", true},
		{19.9, "Video_A", false},
		{55, "Video_A", true},
		{30, "Video_A", false},
		{100, "Video_A", true},
		{100, "Video_A", false},
		{1, "Video_B", true},
	}
	for i, step := range steps {
		if got := s.ShouldLog(step.percent, step.subject); got != step.want {
			t.Fatalf("step %d: ShouldLog(%v, %q) = %v, want %v", i, step.percent, step.subject, got, step.want)
		}
	}
	s.Reset()
	if !s.ShouldLog(0, "") {
		t.Fatal("expected first reading after reset to log")
	}
}
