package factors

import (
	"time"

	"github.com/jakechorley/oncall-rota/pkg/core/model"
	"github.com/jakechorley/oncall-rota/pkg/core/timerange"
)

func at(day, hour int) time.Time {
	return time.Date(2023, time.January, day, hour, 0, 0, 0, time.UTC)
}

func slot(day int, human string) model.ScheduleSlot {
	return model.ScheduleSlot{
		Time:  timerange.New(at(day, 9), at(day, 17)),
		Human: human,
	}
}

func testRota(people ...string) *model.Rota {
	rota := &model.Rota{
		ShiftLength: model.Day,
		People:      make(map[string]model.Person),
	}
	for _, p := range people {
		rota.People[p] = model.Person{}
	}
	return rota
}

func timeRanges(slots []model.ScheduleSlot) []timerange.TimeRange {
	ranges := make([]timerange.TimeRange, len(slots))
	for i, s := range slots {
		ranges[i] = s.Time
	}
	return ranges
}
