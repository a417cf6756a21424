package models

// ActivityType is one member of the closed activity category set.
// The stored value is the stable tag; the display name is what the
// API exposes and accepts.
type ActivityType string

const (
	ActivitySoccer           ActivityType = "SOCCER"
	ActivityBasketball       ActivityType = "BASKETBALL"
	ActivityTennis           ActivityType = "TENNIS"
	ActivitySwimming         ActivityType = "SWIMMING"
	ActivityRunning          ActivityType = "RUNNING"
	ActivityCycling          ActivityType = "CYCLING"
	ActivityGolf             ActivityType = "GOLF"
	ActivityBaseball         ActivityType = "BASEBALL"
	ActivityMartialArts      ActivityType = "MARTIAL_ARTS"
	ActivityYoga             ActivityType = "YOGA"
	ActivitySnowboarding     ActivityType = "SNOWBOARDING"
	ActivityClimbing         ActivityType = "CLIMBING"
	ActivityMusic            ActivityType = "MUSIC"
	ActivityArts             ActivityType = "ARTS"
	ActivityTech             ActivityType = "TECH"
	ActivityEducation        ActivityType = "EDUCATION"
	ActivityOutdoors         ActivityType = "OUTDOORS"
	ActivityFood             ActivityType = "FOOD"
	ActivitySocial           ActivityType = "SOCIAL"
	ActivityWellness         ActivityType = "WELLNESS"
	ActivityNetworking       ActivityType = "NETWORKING"
	ActivityGaming           ActivityType = "GAMING"
	ActivityTravel           ActivityType = "TRAVEL"
	ActivityVolunteering     ActivityType = "VOLUNTEERING"
	ActivityShopping         ActivityType = "SHOPPING"
	ActivityReading          ActivityType = "READING"
	ActivityWriting          ActivityType = "WRITING"
	ActivityPhotography      ActivityType = "PHOTOGRAPHY"
	ActivityGardening        ActivityType = "GARDENING"
	ActivityCooking          ActivityType = "COOKING"
	ActivityBaking           ActivityType = "BAKING"
	ActivityFashion          ActivityType = "FASHION"
	ActivityFilm             ActivityType = "FILM"
	ActivityFitness          ActivityType = "FITNESS"
	ActivityMeditation       ActivityType = "MEDITATION"
	ActivityFishing          ActivityType = "FISHING"
	ActivityHiking           ActivityType = "HIKING"
	ActivityBoardGames       ActivityType = "BOARD_GAMES"
	ActivityDancing          ActivityType = "DANCING"
	ActivityLanguageLearning ActivityType = "LANGUAGE_LEARNING"
	ActivityPainting         ActivityType = "PAINTING"
)

// activityDisplayNames is the canonical tag -> display name table.
var activityDisplayNames = map[ActivityType]string{
	ActivitySoccer:           "Soccer",
	ActivityBasketball:       "Basketball",
	ActivityTennis:           "Tennis",
	ActivitySwimming:         "Swimming",
	ActivityRunning:          "Running",
	ActivityCycling:          "Cycling",
	ActivityGolf:             "Golf",
	ActivityBaseball:         "Baseball",
	ActivityMartialArts:      "Martial Arts",
	ActivityYoga:             "Yoga",
	ActivitySnowboarding:     "Snowboarding",
	ActivityClimbing:         "Climbing",
	ActivityMusic:            "Music",
	ActivityArts:             "Arts",
	ActivityTech:             "Technology",
	ActivityEducation:        "Education",
	ActivityOutdoors:         "Outdoors",
	ActivityFood:             "Food & Dining",
	ActivitySocial:           "Social Events",
	ActivityWellness:         "Wellness & Fitness",
	ActivityNetworking:       "Networking",
	ActivityGaming:           "Gaming",
	ActivityTravel:           "Travel",
	ActivityVolunteering:     "Volunteering",
	ActivityShopping:         "Shopping",
	ActivityReading:          "Reading",
	ActivityWriting:          "Writing",
	ActivityPhotography:      "Photography",
	ActivityGardening:        "Gardening",
	ActivityCooking:          "Cooking",
	ActivityBaking:           "Baking",
	ActivityFashion:          "Fashion & Style",
	ActivityFilm:             "Film & Movies",
	ActivityFitness:          "Fitness & Bodybuilding",
	ActivityMeditation:       "Meditation & Mindfulness",
	ActivityFishing:          "Fishing",
	ActivityHiking:           "Hiking",
	ActivityBoardGames:       "Board Games",
	ActivityDancing:          "Dancing",
	ActivityLanguageLearning: "Language Learning",
	ActivityPainting:         "Painting",
}

// activityByDisplayName is the reverse index, built once at startup.
var activityByDisplayName = func() map[string]ActivityType {
	index := make(map[string]ActivityType, len(activityDisplayNames))
	for tag, name := range activityDisplayNames {
		index[name] = tag
	}
	return index
}()

// ActivityTypeFromDisplayName resolves a display name to its activity type.
// The match is case-sensitive and exact; ok is false for unknown names.
func ActivityTypeFromDisplayName(name string) (ActivityType, bool) {
	activityType, ok := activityByDisplayName[name]
	return activityType, ok
}

// DisplayName returns the canonical display name for the activity type.
func (a ActivityType) DisplayName() string {
	return activityDisplayNames[a]
}
