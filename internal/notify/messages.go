package notify

import "math/rand/v2"

const fallbackMessage = "Time for a quick reset."

var reminderMessages = []string{
	"Stand up before you photosynthesize.",
	"Touch grass (nearby plant also counts).",
	"Keyboard's hot, legs are not.",
	"Blink like you mean it: 10x.",
	"Break speedrun in 30s. Go.",
	"Free DLC: posture.",
	"Up. Now. Your chair has attachment issues.",
	"Stand before you grow roots.",
	"Blink or become a raisin.",
	"Walk away like the main character.",
	"Your spine filed a ticket.",
	"Walk. The chair will cope.",
	"Your posture called HR.",
	"Side quest: 30s breathing.",
	"Keyboard is not a life partner.",
	"AFK or AF-ache.",
	"Stare at something >20ft, not your soul.",
	"Load-bearing human requires maintenance.",
}

// ActionVariant is one wording of a notification button together with the
// line logged when the user presses it.
type ActionVariant struct {
	Label   string
	LogLine string
}

var remindVariants = []ActionVariant{
	{"Give me five", "Give me five - stretch IOU noted."},
	{"Hit me in five", "Hit me in five - calendar set to wiggle."},
	{"Let me finish this", "Let me finish this - timer's waiting with sass."},
	{"Nudge me in five", "Nudge me in five - snooze engaged, zen pending."},
	{"Back in five", "Back in five - chair misses you already."},
	{"Ping me in five", "Ping me in five - reminder primed and ticking."},
	{"Five-minute breather", "Five-minute breather - lungs scheduled."},
	{"BRB - 5", "BRB - 5 - calendar winked, timer reset."},
	{"Snooze (5m)", "Snooze (5m) - cushions fluffing virtually."},
	{"Circle back in 5", "Circle back in 5 - orbit plotted."},
	{"Tap me in five", "Tap me in five - coach has the whistle."},
	{"Five more, coach", "Five more, coach - hustle annotated."},
	{"Hold my coffee (5m)", "Hold my coffee - countdown steaming."},
	{"One more commit (5m)", "One more commit - git blame accepted."},
	{"Let me wrap up (5m)", "Wrap up (5m) - ribbon pending."},
	{"After this build (5m)", "After this build - CI/CD bribed."},
	{"After this test (5m)", "After this test - assertions appeased."},
	{"After this call (5m)", "After this call - small talk queued."},
	{"Remind in five", "Remind in five - patience, grasshopper."},
	{"Later - five", "Later - five - calendar gave a nod."},
	{"Five ticks, please", "Five ticks - metronome set."},
	{"Back shortly (5m)", "Back shortly - away message drafted."},
	{"Give me 5 min", "Give me 5 min - sand timer flipped."},
	{"Hit snooze (5m)", "Hit snooze - alarm tucked in."},
}

var skipVariants = []ActionVariant{
	{"Skip this lap", "Skip this lap. Hustle responsibly."},
	{"Skip - boss cameo", "Skip - noted, boss cameo logged."},
	{"Skip, still grinding", "Skip - grind streak acknowledged."},
	{"Skip this one", "Skip - this round benched."},
	{"Skip - on a roll", "Skip - momentum protected."},
	{"Skip - deep focus", "Skip - tunnel vision honored."},
	{"Skip - deadline sprint", "Skip - sprint shoes laced."},
	{"Skip - meeting just started", "Skip - calendar drama respected."},
	{"Skip - quick call", "Skip - headset hair justified."},
	{"Skip - compiling", "Skip - compiler chanting arcana."},
	{"Skip - shipping now", "Skip - release train departing."},
	{"Skip - demo time", "Skip - stage lights warmed."},
	{"Skip - eyes on logs", "Skip - log rain interpreted."},
	{"Skip - pair session", "Skip - duo mode enabled."},
	{"Skip - network flaky", "Skip - packets doing parkour."},
	{"Skip - not now", "Skip - vibes evaluated."},
	{"Skip - almost done", "Skip - finish line in sight."},
	{"Skip - coffee run", "Skip - caffeine diplomacy underway."},
	{"Skip - writing email", "Skip - subject line negotiating."},
	{"Skip - keyboard on fire", "Skip - typing WPM illegal."},
	{"Skip - late-night grind", "Skip - owls co-signed."},
	{"Skip - screen share", "Skip - pixels in public."},
	{"Skip - standup soon", "Skip - jokes rehearsed."},
}

// ChooseMessage picks a reminder text at random.
func ChooseMessage() string {
	if len(reminderMessages) == 0 {
		return fallbackMessage
	}
	return reminderMessages[rand.IntN(len(reminderMessages))]
}

// ChooseRemindVariant picks the wording of the "remind me in five" button.
func ChooseRemindVariant() ActionVariant {
	return chooseVariant(remindVariants, ActionVariant{"Give me five", "Give me five - stretch IOU noted."})
}

// ChooseSkipVariant picks the wording of the "skip" button.
func ChooseSkipVariant() ActionVariant {
	return chooseVariant(skipVariants, ActionVariant{"Skip this lap", "Skip this lap. Hustle responsibly."})
}

func chooseVariant(variants []ActionVariant, fallback ActionVariant) ActionVariant {
	if len(variants) == 0 {
		return fallback
	}
	return variants[rand.IntN(len(variants))]
}
