package submission

// RequiredColumns lists, in reporting order, every column a data table must
// carry. Only presence is required; values are not type-checked.
var RequiredColumns = []string{
	ColumnSubject, ColumnTrial, "target_angle", "feedback_type", "rotation_angle",
	"hand_angle", "reaction_time", "movement_time", "search_time", "screen_height",
	"screen_width", "repeat_number", "researcher_id", "condition", "block_number",
	"research_setting", "input_device", "subject_age", "subject_sex", "subject_race",
	"neuro_condition", "neuro_description", "years_of_education", "subject_vision",
	"dominant_hand", "device_type", "mouse_type", "feedback_time", "initial_x",
	"initial_y", "number_of_targets", "target_type", "target_height", "target_width",
	"target_x", "target_y", "clamp_size", "rotation_direction", "hand_flip",
	"hand_base", "hand_max_velocity", "cognitive_assessment", "cognitive_assessment_score",
}
