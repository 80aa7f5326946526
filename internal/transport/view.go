package transport

import "github.com/Skotchmaster/roadmap/internal/models"

// RoadmapView keeps the three status booleans older clients read next to the
// single status value.
type RoadmapView struct {
	models.Roadmap
	Planning   bool `json:"planning"`
	InProgress bool `json:"in_progress"`
	Completed  bool `json:"completed"`
}

func NewRoadmapView(r models.Roadmap) RoadmapView {
	return RoadmapView{
		Roadmap:    r,
		Planning:   r.Status.Planning(),
		InProgress: r.Status.InProgress(),
		Completed:  r.Status.Completed(),
	}
}

func NewRoadmapViews(items []models.Roadmap) []RoadmapView {
	out := make([]RoadmapView, 0, len(items))
	for _, r := range items {
		out = append(out, NewRoadmapView(r))
	}
	return out
}

type TopicView struct {
	models.Topic
	Objectives []models.Objective `json:"objectives"`
	Resources  []models.Resource  `json:"resources"`
}

type RoadmapDetailView struct {
	Roadmap    RoadmapView        `json:"roadmap"`
	Topics     []TopicView        `json:"topics"`
	Objectives []models.Objective `json:"objectives"`
	Resources  []models.Resource  `json:"resources"`
}

func NewRoadmapDetailView(r models.Roadmap, topics []models.TopicTree) RoadmapDetailView {
	v := RoadmapDetailView{
		Roadmap:    NewRoadmapView(r),
		Topics:     make([]TopicView, 0, len(topics)),
		Objectives: []models.Objective{},
		Resources:  []models.Resource{},
	}
	for _, t := range topics {
		tv := TopicView{Topic: t.Topic, Objectives: t.Objectives, Resources: t.Resources}
		if tv.Objectives == nil {
			tv.Objectives = []models.Objective{}
		}
		if tv.Resources == nil {
			tv.Resources = []models.Resource{}
		}
		v.Topics = append(v.Topics, tv)
		v.Objectives = append(v.Objectives, t.Objectives...)
		v.Resources = append(v.Resources, t.Resources...)
	}
	return v
}

type SearchResponse struct {
	Total    int64         `json:"total"`
	Roadmaps []RoadmapView `json:"roadmaps"`
}

type StatusMessage struct {
	Message string `json:"message"`
}
