package domain

// Activity classifies what an operator was doing during a time entry.
// The two-character codes are a fixed enumeration shared with the capture
// surface and must not change independently on either side.
type Activity struct {
	Code       string `json:"code" binding:"required,len=2" gorm:"primary_key;type:CHAR(2)"`
	Name       string `json:"name" binding:"required,lte=255"`
	Productive bool   `json:"productive"`
}

func (a *Activity) TableName() string {
	return "activities"
}

const (
	ActivitySetup       = "01"
	ActivityOperative   = "02"
	ActivityRepair      = "03"
	ActivityRest        = "04"
	ActivityDowntime    = "05"
	ActivityMaintenance = "06"
	ActivityLackOfWork  = "07"
	ActivityAuxiliary   = "08"
)

// HourBucket names one of the accumulated-hours buckets of a DailySummary.
type HourBucket string

const (
	BucketSetup       HourBucket = "SETUP"
	BucketOperative   HourBucket = "OPERATIVE"
	BucketRepair      HourBucket = "REPAIR"
	BucketRest        HourBucket = "REST"
	BucketDowntime    HourBucket = "DOWNTIME"
	BucketMaintenance HourBucket = "MAINTENANCE"
	BucketLackOfWork  HourBucket = "LACK_OF_WORK"
	BucketAuxiliary   HourBucket = "AUXILIARY"
)

var activityBuckets = map[string]HourBucket{
	ActivitySetup:       BucketSetup,
	ActivityOperative:   BucketOperative,
	ActivityRepair:      BucketRepair,
	ActivityRest:        BucketRest,
	ActivityDowntime:    BucketDowntime,
	ActivityMaintenance: BucketMaintenance,
	ActivityLackOfWork:  BucketLackOfWork,
	ActivityAuxiliary:   BucketAuxiliary,
}

// BucketOfActivity maps an activity code to its hours bucket. An
// unrecognized code lands in the generic auxiliary bucket, never dropped.
func BucketOfActivity(code string) HourBucket {
	bucket, found := activityBuckets[code]
	if !found {
		return BucketAuxiliary
	}
	return bucket
}

func KnownActivityCode(code string) bool {
	_, found := activityBuckets[code]
	return found
}

// DefaultActivities is the seed set written on first migration.
var DefaultActivities = []Activity{
	{Code: ActivitySetup, Name: "Setup", Productive: false},
	{Code: ActivityOperative, Name: "Operative", Productive: true},
	{Code: ActivityRepair, Name: "Repair", Productive: false},
	{Code: ActivityRest, Name: "Rest", Productive: false},
	{Code: ActivityDowntime, Name: "Other downtime", Productive: false},
	{Code: ActivityMaintenance, Name: "Maintenance", Productive: false},
	{Code: ActivityLackOfWork, Name: "Lack of work", Productive: false},
	{Code: ActivityAuxiliary, Name: "Other auxiliary", Productive: false},
}
