package courses

import "github.com/rollbook-dev/rollbook/internal/model"

// DefaultTable returns the built-in course list in declared order.
func DefaultTable() []model.Course {
	return []model.Course{
		{Code: "16242101", Name: "Transforms and Vector Calculus"},
		{Code: "16242102", Name: "Design and Analysis of Algorithms"},
		{Code: "16242103", Name: "Database Management System"},
		{Code: "16242104", Name: "Operating Systems"},
		{Code: "16242105", Name: "Computer Networks"},
		{Code: "16242106", Name: "Design and Analysis of Algorithms Lab"},
		{Code: "16242107", Name: "Database Management System Lab"},
		{Code: "16242108", Name: "Problem Solving Through Python Programming"},
		{Code: "16242109", Name: "Semester Proficiency"},
		{Code: "16242110", Name: "Macro Project-I"},
		{Code: "16242111", Name: "Self-learning/Presentation"},
		{Code: "16242112", Name: "Cyber Security"},
		{Code: "NEC00076", Name: "LT Spice Tutorial for Circuit Simulation"},
	}
}
