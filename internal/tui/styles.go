package tui

import "github.com/gerunddev/mdtree/internal/styles"

var (
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.DimStyle
	valueStyle     = styles.NormalTextStyle
	spinnerStyle   = styles.SpinnerStyle
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	warningStyle   = styles.WarningStyle
	errorStyle     = styles.ErrorStyle
	highlightStyle = styles.HighlightStyle
	tableStyle     = styles.TableStyle
)
