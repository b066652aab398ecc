package clock

import "time"

// Real возвращает текущее время в часовом поясе сервиса
type Real struct {
	Location *time.Location
}

// New создает часы для часового пояса; nil означает UTC
func New(loc *time.Location) *Real {
	if loc == nil {
		loc = time.UTC
	}
	return &Real{Location: loc}
}

// Now возвращает текущее время
func (c *Real) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// Fixed часы, всегда возвращающие одно и то же время
type Fixed struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (c Fixed) Now() time.Time {
	return c.At
}
