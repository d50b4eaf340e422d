package model

// AreaInCharge supervises one or more areas and, through them, workshop ICs.
type AreaInCharge struct {
	ID         int     `db:"id" json:"ID"`
	FirstName  string  `db:"first_name" json:"FirstName"`
	MiddleName *string `db:"middle_name" json:"MiddleName"`
	LastName   string  `db:"last_name" json:"LastName"`
}

// Area is keyed by its name. AICID references the supervising area in-charge.
type Area struct {
	AreaName string `db:"area_name" json:"Area_Name"`
	AICID    int    `db:"ic" json:"AIC_ID"`
}

type WorkshopIC struct {
	WkICID int     `db:"id" json:"WkICID"`
	FName  string  `db:"fname" json:"FName"`
	MName  *string `db:"mname" json:"MName"`
	LName  string  `db:"lname" json:"LName"`
	Rating int     `db:"rating" json:"Rating"`
	AreaIC int     `db:"area_ic" json:"AreaIC"`
}

// Workshop.Score is computed by the database on insert/update and is never
// written by the application.
type Workshop struct {
	WkCode         int     `db:"wk_code" json:"wkCode"`
	WkName         string  `db:"wk_name" json:"wkName"`
	WkArea         string  `db:"area" json:"wkArea"`
	Manpower       int     `db:"manpower" json:"manpower"`
	CustomerVisits int     `db:"customer_visits" json:"customer_visits"`
	Recovery       string  `db:"recovery" json:"recovery"`
	Score          float64 `db:"score" json:"score"`
}

// Manages links a workshop IC to a workshop they manage.
type Manages struct {
	WkshpID int `db:"wk_code" json:"WkshpID"`
	ICID    int `db:"ic_id" json:"ICID"`
}

// WorkshopRevenueSummary is one row of the printable report: a workshop with
// its revenue history rolled up.
type WorkshopRevenueSummary struct {
	WkCode      int     `db:"wk_code" json:"wkCode"`
	WkName      string  `db:"wk_name" json:"wkName"`
	WkArea      string  `db:"area" json:"wkArea"`
	Score       float64 `db:"score" json:"score"`
	Entries     int     `db:"entries" json:"entries"`
	TotalSales  float64 `db:"total_sales" json:"total_sales"`
	ServiceCost float64 `db:"service_cost" json:"service_cost"`
	Profit      float64 `db:"profit" json:"profit"`
}

// Revenue.Profit is computed by the database as total_sales - service_cost.
type Revenue struct {
	WkCode      int     `db:"wk_code" json:"wkcode"`
	Year        int     `db:"year" json:"year"`
	Quarter     int     `db:"quarter" json:"quarter"`
	TotalSales  float64 `db:"total_sales" json:"total_sales"`
	ServiceCost float64 `db:"service_cost" json:"service_cost"`
	Profit      float64 `db:"profit" json:"profit"`
}
