package ui

// ButtonVariant selects the button colour scheme
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonOutline   ButtonVariant = "outline"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonDanger    ButtonVariant = "danger"
)

// Size is shared by buttons and cards
type Size string

const (
	SizeNone Size = "none"
	SizeSM   Size = "sm"
	SizeMD   Size = "md"
	SizeLG   Size = "lg"
)

const buttonBase = "inline-flex items-center justify-center font-medium rounded-lg transition-colors " +
	"focus:outline-none focus:ring-2 focus:ring-offset-2 disabled:opacity-50 disabled:cursor-not-allowed"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-primary-600 text-white hover:bg-primary-700 focus:ring-primary-500",
	ButtonSecondary: "bg-secondary-100 text-secondary-900 hover:bg-secondary-200 focus:ring-secondary-500",
	ButtonOutline:   "border border-secondary-300 bg-white text-secondary-700 hover:bg-secondary-50 focus:ring-primary-500",
	ButtonGhost:     "text-secondary-700 hover:bg-secondary-100 focus:ring-secondary-500",
	ButtonDanger:    "bg-error-600 text-white hover:bg-error-700 focus:ring-error-500",
}

var buttonSizes = map[Size]string{
	SizeSM: "px-3 py-1.5 text-sm",
	SizeMD: "px-4 py-2 text-sm",
	SizeLG: "px-6 py-3 text-base",
}

// Button is a clickable action. With Href set it renders as a link.
type Button struct {
	Label     string
	Variant   ButtonVariant
	Size      Size
	FullWidth bool
	Disabled  bool
	Type      string
	Href      string
	Class     string
}

// Classes returns the class list. Unknown variants and sizes fall back to primary/md.
func (b Button) Classes() string {
	variant, ok := buttonVariants[b.Variant]
	if !ok {
		variant = buttonVariants[ButtonPrimary]
	}
	size, ok := buttonSizes[b.Size]
	if !ok {
		size = buttonSizes[SizeMD]
	}
	return Classes(buttonBase, variant, size, when(b.FullWidth, "w-full"), b.Class)
}

// ButtonType is the type attribute, "button" unless set
func (b Button) ButtonType() string {
	if b.Type == "" {
		return "button"
	}
	return b.Type
}
