package job

import "time"

type Posting struct {
	ID            string
	TitleShort    string
	Title         string
	PostedAt      time.Time
	SalaryYearAvg *float64
	Country       string
	ScheduleType  string
}

func (p Posting) HasSalary() bool {
	return p.SalaryYearAvg != nil
}

func (p Posting) Salary() float64 {
	if p.SalaryYearAvg == nil {
		return 0
	}
	return *p.SalaryYearAvg
}

func (p Posting) HasPostedAt() bool {
	return !p.PostedAt.IsZero()
}
