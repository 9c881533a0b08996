package models

// ============================================================================
// POSITION CONSTANTS
// ============================================================================

// FirstSerial is the serial of the top card in a column
const FirstSerial = 1

// ============================================================================
// FIELD LIMITS
// ============================================================================

// MaxTitleLength bounds task, project and meeting titles
const MaxTitleLength = 255
