package summary

// ComputePay returns the amount owed for output above target: every net
// unit (output minus scrap) beyond the target earns unitValue. Never
// negative.
func ComputePay(output, scrap, target int, unitValue float64) float64 {
	net := output - scrap
	extra := net - target
	if extra <= 0 {
		return 0
	}
	return float64(extra) * unitValue
}

// PayPreviewRequest carries the inputs of the live pay preview shown on the
// capture surface before an entry set is submitted. It runs the same
// formula as the authoritative recompute.
type PayPreviewRequest struct {
	Output int `json:"output" binding:"gte=0"`
	Scrap  int `json:"scrap" binding:"gte=0"`

	Target    int     `json:"target" binding:"gte=0"`
	UnitValue float64 `json:"unitValue" binding:"gte=0"`

	OperativeHours float64 `json:"operativeHours" binding:"gte=0"`
}

type PayPreviewResult struct {
	NetOutput   int     `json:"netOutput"`
	ExtraOutput int     `json:"extraOutput"`
	Amount      float64 `json:"amount"`
	HourlyRate  float64 `json:"hourlyRate"`
}

func PreviewPay(r PayPreviewRequest) PayPreviewResult {
	net := r.Output - r.Scrap
	extra := net - r.Target
	if extra < 0 {
		extra = 0
	}
	rate := float64(0)
	if r.OperativeHours > 0 {
		rate = float64(r.Output) / r.OperativeHours
	}
	return PayPreviewResult{
		NetOutput:   net,
		ExtraOutput: extra,
		Amount:      ComputePay(r.Output, r.Scrap, r.Target, r.UnitValue),
		HourlyRate:  rate,
	}
}
