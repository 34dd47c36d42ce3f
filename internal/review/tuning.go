package review

// Tuning constants. None has a documented derivation.
const (
	kcalPerKilojoule  = 0.239
	cyclingKcalPerKm  = 25.0
	defaultKcalPerKm  = 60.0
	topSportsLimit    = 5
	topMonthsLimit    = 3
	defaultPlaceName  = "The Great Outdoors"
	coordGridPerDeg   = 100.0 // 0.01 degree cells, about 1.1 km
	relaxationShare   = 0.3
	machineStreakWeek = 20
	morningShare      = 0.4
	nightShare        = 0.3
	lunchShare        = 0.2
	weekendShare      = 0.6
	varietyCategories = 4
)

// Time-of-day windows, UTC hours, inclusive.
const (
	morningStartHour = 4
	morningEndHour   = 8
	lunchStartHour   = 11
	lunchEndHour     = 13
	nightStartHour   = 20
	nightEndHour     = 23
)

// Commute window in minutes, exclusive.
const (
	commuteMinMinutes = 5
	commuteMaxMinutes = 45
)

// Comparison units for the fun facts.
const (
	everestMeters     = 8849.0
	eiffelTowerMeters = 330.0
	pizzaSliceKcal    = 285.0
	donutKcal         = 250.0
	burgerKcal        = 550.0
	songSeconds       = 210.0
	movieSeconds      = 7200.0
	sprintMeters      = 100.0
	poolLengthMeters  = 50.0
)
