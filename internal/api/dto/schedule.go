package dto

type StayTimesRequest struct {
	TravelTimes []int `json:"travel_times"`
}

type StayTimesResponse struct {
	Windows []string `json:"windows"`
}
