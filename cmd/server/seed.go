package main

import "afterschool/internal/core/domain"

// sampleLessons is the catalog the service ships with. It is only inserted
// when the lessons collection is empty.
var sampleLessons = []domain.Lesson{
	{Subject: "Mathematics", Location: "London", Price: 100, Space: 5, Icon: "fa-calculator"},
	{Subject: "English Literature", Location: "Manchester", Price: 90, Space: 8, Icon: "fa-book"},
	{Subject: "Science", Location: "London", Price: 110, Space: 3, Icon: "fa-flask"},
	{Subject: "Art & Design", Location: "Birmingham", Price: 85, Space: 10, Icon: "fa-palette"},
	{Subject: "Music", Location: "London", Price: 95, Space: 6, Icon: "fa-music"},
	{Subject: "Physical Education", Location: "Leeds", Price: 75, Space: 12, Icon: "fa-football-ball"},
	{Subject: "Computer Science", Location: "Manchester", Price: 120, Space: 4, Icon: "fa-laptop-code"},
	{Subject: "History", Location: "Birmingham", Price: 80, Space: 7, Icon: "fa-landmark"},
	{Subject: "Geography", Location: "London", Price: 85, Space: 9, Icon: "fa-globe"},
	{Subject: "French Language", Location: "Manchester", Price: 95, Space: 5, Icon: "fa-language"},
	{Subject: "Drama", Location: "Leeds", Price: 88, Space: 6, Icon: "fa-theater-masks"},
	{Subject: "Cooking", Location: "London", Price: 105, Space: 4, Icon: "fa-utensils"},
}
