package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

func (p *Platform) Scan(value interface{}) error {
	*p = Platform(value.(string))
	return nil
}

func (p Platform) Value() string {
	return string(p)
}

func ValidatePlatform(fl validator.FieldLevel) bool {
	matched, _ := regexp.MatchString("^ios|android|web$", fl.Field().String())
	return matched
}

func ValidatePlatformRaw(value string) bool {
	matched, _ := regexp.MatchString("^ios|android|web$", value)
	return matched
}

func ScanPlatform(value string) Platform {
	return Platform(value)
}

// Category is the fixed wardrobe category set. Suggestion grouping folds a
// few of these into broader slots (activewear and sleepwear behave as tops,
// underwear as accessories, formal as dresses).
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryUnderwear   Category = "underwear"
	CategoryActivewear  Category = "activewear"
	CategorySleepwear   Category = "sleepwear"
	CategoryFormal      Category = "formal"
)

func (c *Category) Scan(value interface{}) error {
	*c = Category(value.(string))
	return nil
}

func (c Category) Value() string {
	return string(c)
}

var categoryRe = regexp.MustCompile("^(tops|bottoms|dresses|outerwear|shoes|accessories|underwear|activewear|sleepwear|formal)$")

func ValidateCategory(fl validator.FieldLevel) bool {
	return categoryRe.MatchString(fl.Field().String())
}

type Occasion string

const (
	OccasionCasual       Occasion = "casual"
	OccasionWork         Occasion = "work"
	OccasionFormal       Occasion = "formal"
	OccasionParty        Occasion = "party"
	OccasionDate         Occasion = "date"
	OccasionWorkout      Occasion = "workout"
	OccasionTravel       Occasion = "travel"
	OccasionHome         Occasion = "home"
	OccasionSpecialEvent Occasion = "special_event"
	OccasionOutdoor      Occasion = "outdoor"
)

var occasionRe = regexp.MustCompile("^(casual|work|formal|party|date|workout|travel|home|special_event|outdoor)$")

func ValidateOccasion(fl validator.FieldLevel) bool {
	return occasionRe.MatchString(fl.Field().String())
}

type Season string

const (
	SeasonSpring    Season = "spring"
	SeasonSummer    Season = "summer"
	SeasonFall      Season = "fall"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "all_season"
)

var seasonRe = regexp.MustCompile("^(spring|summer|fall|winter|all_season)$")

func ValidateSeason(fl validator.FieldLevel) bool {
	return seasonRe.MatchString(fl.Field().String())
}

type MoodTag string

const (
	MoodConfident    MoodTag = "confident"
	MoodComfortable  MoodTag = "comfortable"
	MoodElegant      MoodTag = "elegant"
	MoodEdgy         MoodTag = "edgy"
	MoodPlayful      MoodTag = "playful"
	MoodProfessional MoodTag = "professional"
	MoodRomantic     MoodTag = "romantic"
	MoodSporty       MoodTag = "sporty"
	MoodTrendy       MoodTag = "trendy"
	MoodClassic      MoodTag = "classic"
)

var moodRe = regexp.MustCompile("^(confident|comfortable|elegant|edgy|playful|professional|romantic|sporty|trendy|classic)$")

func ValidateMood(fl validator.FieldLevel) bool {
	return moodRe.MatchString(fl.Field().String())
}
