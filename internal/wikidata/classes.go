package wikidata

// coreProductCategories are Wikidata classes known to denote a specific
// kind of consumer product (phone model, car model, camera model, ...).
// When a product's classes intersect this set, its category is considered
// resolved without falling back to the generic "uncategorized" bucket the
// analysis tooling in original_source/condenser/src/analysis.rs reports on.
// Grounded on original_source/lab/src/wikidata.rs's `items` module.
var coreProductCategories = buildClassSet([]uint64{
	343566, // ACTION_FIGURE
	80359036, // ALCOHOL_BRAND
	3231690, // AUTOMOBILE_MODEL
	31087, // CALCULATOR
	192234, // CAMERA_LENS
	20888659, // CAMERA_MODEL
	190403, // CATAMARAN
	19723444, // CELL_PHONE_MODEL
	5300, // CENTRAL_PROCESSING_UNIT
	504154, // CITY_CAR
	946808, // COMPACT_CAR
	106646709, // COMPACT_DIGITAL_CAMERA
	55990535, // COMPUTER_MODEL
	68, // COMPUTER
	850270, // CONCEPT_CAR
	62927, // DIGITAL_CAMERA
	196342, // DIGITAL_SINGLE_LENS_REFLEX_CAMERA
	40050, // DRINK
	193692, // ELECTRIC_CAR
	78987, // ELECTRIC_GUITAR
	1357619, // EXECUTIVE_CAR
	1940287, // FAMILY_CAR
	16323605, // FOOD_BRAND
	865422, // GAME_CONTROLLER
	183484, // GRAPHICS_PROCESSING_UNIT
	6607, // GUITAR
	941818, // HANDHELD_GAME_CONSOLE
	473708, // HOME_COMPUTER
	17589470, // HOME_VIDEO_GAME_CONSOLE
	1059437, // KEI_CAR
	3962, // LAPTOP
	5581707, // LUXURY_VEHICLE
	165678, // MICROCONTROLLER
	5297, // MICROPROCESSOR
	4010528, // MID_SIZE_CAR
	223189, // MINIVAN
	209918, // MIRRORLESS_INTERCHANGEABLE_LENS_CAMERA
	17517, // MOBILE_PHONE
	1999103, // MONOHULL
	1420, // MOTOR_CAR
	23866334, // MOTORCYCLE_MODEL
	34493, // MOTORCYCLE
	193234, // MOTOR_SCOOTER
	29982117, // MUSICAL_INSTRUMENT_MODEL
	16338, // PERSONAL_COMPUTER
	521097, // PHABLET
	215601, // PICKUP_TRUCK
	631962, // PRIME_LENS
	170483, // SAILING_SHIP
	196353, // SINGLE_LENS_REFLEX_CAMERA
	19723451, // SMARTPHONE_MODEL
	71266741, // SMARTPHONE_MODEL_SERIES
	22645, // SMARTPHONE
	19799938, // SMARTWATCH_MODEL
	147538, // SOFT_DRINK
	274586, // SPORTS_CAR
	192152, // SPORT_UTILITY_VEHICLE
	2704381, // SUBCOMPACT_CAR
	815679, // SUPERCAR
	155972, // TABLET_COMPUTER
	516461, // TELEPHOTO_LENS
	11422, // TOY
	43193, // TRUCK
	484000, // UNMANNED_AERIAL_VEHICLE
	193468, // VAN
	8076, // VIDEO_GAME_CONSOLE
	124441, // WASHING_MACHINE
	109736715, // WASHING_MACHINE_MODEL
	632867, // WIDE_ANGLE_LENS
	170173, // YACHT
	220310, // ZOOM_LENS
})
