package meal

import "time"

type AddMealRequest struct {
	Name       string     `json:"name" validate:"required"`
	Period     string     `json:"period" validate:"required"`
	Calories   float64    `json:"calories"`
	Protein    float64    `json:"protein"`
	Carbs      float64    `json:"carbs"`
	Fat        float64    `json:"fat"`
	UploadTime *time.Time `json:"upload_time,omitempty"`
}
