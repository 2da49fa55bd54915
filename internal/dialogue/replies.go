package dialogue

// User-facing texts.
const (
	WelcomeGreeting = "Hi there and welcome to Grosa!\n" +
		"My name is Johnny and I will be your personal health assistant.\n" +
		"What's your name?"

	WelcomeApology = "Sorry, I didn't understand your initial message.\n" +
		"But no worries, I'm here to help you!"

	Welcome = "Welcome to Grosa!\n" +
		"My name is Johnny and I will be your personal health assistant.\n" +
		"What's your name?"

	InvalidName   = "Please enter a valid name (letters only)."
	AskAge        = "Thanks, %s! Now, please provide your age."
	InvalidAge    = "Please enter a valid age (e.g., 25)."
	AskGender     = "Got it! Now, what is your gender? (Male/Female/Other)"
	InvalidGender = "Please enter 'Male', 'Female' or 'Other'."

	OnboardingDone = "Great! You're all set.\n" +
		"Please note your information is confidential and is used only to provide you with the best service.\n" +
		"You can always update your information via the /profile command. \n\n" +
		"Now, how can I assist you today?"

	OnlyText      = "Sorry, I can only process text messages for now. Please type your message."
	UnknownOption = "Sorry, I didn't understand that option. Please pick one from the menu."
	PickFromMenu  = "Please select an option from the menu below."

	EscalationAck    = "Connecting you to a doctor, please hold on..."
	EscalationFailed = "We are unable to connect you to a doctor right now. Please try again later or visit the nearest clinic if it is urgent."

	PersonalInfoAck    = "Thank you for providing your details. How else can I assist you?"
	ReviewingComplaint = "Thank you. A doctor is reviewing your complaint. In the meantime, you can choose one of the options below."
	OracleUnavailable  = "I'm currently experiencing issues. Please try again later."
	SomethingWentWrong = "Oops! Something went wrong while processing your message. Please try again."

	BMIResult = "Your BMI is %.1f, which falls in the \"%s\" category."

	HelpText = "Here is what I can do:\n" +
		"/help - show this message\n" +
		"/profile - show the details we have about you\n" +
		"/settings - update your name, age or gender\n" +
		"/check-bmi - learn how to check your BMI\n\n" +
		"You can also describe how you feel, share your vital signs or ask a health question."

	CheckBMIText = "To check your BMI, send your height and weight like this:\n" +
		"Height: 170 cm, Weight: 70 kg\n" +
		"or\n" +
		"Height: 5 ft 7 in, Weight: 150 lbs"

	SettingsUsage = "To update your details send one of:\n" +
		"/settings name <your name>\n" +
		"/settings age <your age>\n" +
		"/settings gender <male|female|other>"

	SettingsUpdated = "Your %s has been updated to %s."
	UnknownCommand  = "Sorry, I don't recognise that command. Send /help to see what I can do."
	NoProfile       = "I don't have your details yet. Say hi to get started!"
	NotSet          = "Not set"
)
