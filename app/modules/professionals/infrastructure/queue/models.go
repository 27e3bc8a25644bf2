package professionalsqueue

// CompetitionResetJob clears enrollment and announces last week's Free
// Company total.
type CompetitionResetJob struct {
	// Week is the ISO week the reset runs in, so a manual reset and the
	// periodic one landing in the same week collapse into one job.
	Week string `json:"week"`
}

// Kind returns the job type identifier for River
func (CompetitionResetJob) Kind() string { return "competition_reset" }
