package dto

import (
	"trailguard/internal/domains/alert/model"
	"trailguard/shared"
	"trailguard/shared/constant"
	gDto "trailguard/shared/dto"
)

type ResolveAlertRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

type AlertResponse struct {
	ID           string `json:"id"`
	VisitID      string `json:"visit_id"`
	TouristID    string `json:"tourist_id"`
	TouristName  string `json:"tourist_name"`
	LocationName string `json:"location_name"`
	AlertTime    string `json:"alert_time"`
	AlertType    string `json:"alert_type"`
	Resolved     bool   `json:"resolved"`
	ResolvedTime string `json:"resolved_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *AlertResponse) FromModel(mod model.SafetyAlert) {
	r.ID = mod.ID
	r.VisitID = mod.VisitID
	r.TouristID = mod.TouristID
	r.TouristName = mod.TouristName
	r.LocationName = mod.LocationName
	r.AlertTime = mod.AlertTime.Format(constant.DateFormat)
	r.AlertType = string(mod.AlertType)
	r.Resolved = mod.Resolved
	r.Notes = mod.Notes

	if mod.ResolvedTime.Valid {
		r.ResolvedTime = mod.ResolvedTime.Time.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetAlertsResponse struct {
	Alerts    []AlertResponse `json:"alerts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAlertsResponse) FromModels(models []model.SafetyAlert, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Alerts = make([]AlertResponse, len(models))
	for i, mod := range models {
		r.Alerts[i].FromModel(mod)
	}
}
