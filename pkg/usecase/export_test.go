package usecase

// NextWeekdayForTest exposes nextWeekday to the external test package
var NextWeekdayForTest = nextWeekday

// JoinValueStreamsForTest exposes joinValueStreams to the external test package
var JoinValueStreamsForTest = joinValueStreams
